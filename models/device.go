package models

import "time"

// DeviceRecord tracks one client instance participating in an account's
// sync history. Created on first sync from a new device, updated on every
// subsequent sync. Devices are soft-deactivated rather than deleted so
// the account-settings UI can show the full device list; only inactive
// devices past the inactivity threshold are physically removed by cleanup.
type DeviceRecord struct {
	AccountID string `json:"-"`

	// DeviceID uniquely identifies the device within the account.
	DeviceID string `json:"deviceId"`

	DeviceName string `json:"deviceName,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`

	// LastSyncTime is when this device last completed a sync.
	LastSyncTime time.Time `json:"lastSyncTime"`

	// SyncCount is the total number of syncs performed by this device.
	SyncCount int64 `json:"syncCount"`

	// DataSize is the cumulative payload bytes uploaded by this device.
	DataSize int64 `json:"dataSize"`

	// DataTypes lists the data kinds this device declared on its most
	// recent sync.
	DataTypes []string `json:"dataTypes,omitempty"`

	// IsActive is false after explicit deactivation. A device that syncs
	// again is implicitly reactivated.
	IsActive bool `json:"isActive"`

	// DeactivatedAt is set when IsActive is flipped to false.
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// DeviceMeta is the device self-description sent with every upload.
type DeviceMeta struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName,omitempty"`
	DeviceType string `json:"deviceType,omitempty"`
}
