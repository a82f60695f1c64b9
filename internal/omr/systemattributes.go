package omr

import "time"

// InstanceStatus is the lifecycle status of an instance.
type InstanceStatus int

const (
	StatusUnknown InstanceStatus = iota
	StatusDraft
	StatusPrepared
	StatusProposed
	StatusApproved
	StatusActive
	StatusDeprecated
	StatusDeleted
)

func (s InstanceStatus) String() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPrepared:
		return "Prepared"
	case StatusProposed:
		return "Proposed"
	case StatusApproved:
		return "Approved"
	case StatusActive:
		return "Active"
	case StatusDeprecated:
		return "Deprecated"
	case StatusDeleted:
		return "Deleted"
	default:
		return ""
	}
}

// StatusFromName maps a status name back to its InstanceStatus. Unrecognized
// names map to StatusUnknown rather than an error.
func StatusFromName(name string) InstanceStatus {
	switch name {
	case "Draft":
		return StatusDraft
	case "Prepared":
		return StatusPrepared
	case "Proposed":
		return StatusProposed
	case "Approved":
		return StatusApproved
	case "Active":
		return StatusActive
	case "Deprecated":
		return StatusDeprecated
	case "Deleted":
		return StatusDeleted
	default:
		return StatusUnknown
	}
}

// SystemAttributes is the audit and version envelope shared by every
// instance kind. Fields left zero mean "absent"; no defaulting or ordering
// validation happens here, the upstream store is trusted.
type SystemAttributes struct {
	GUID                 string         `json:"guid,omitempty"`
	MetadataCollectionID string         `json:"metadataCollectionId,omitempty"`
	CreatedBy            string         `json:"createdBy,omitempty"`
	CreateTime           time.Time      `json:"createTime,omitzero"`
	UpdatedBy            string         `json:"updatedBy,omitempty"`
	UpdateTime           time.Time      `json:"updateTime,omitzero"`
	Version              int64          `json:"version,omitempty"`
	Status               InstanceStatus `json:"status,omitempty"`
}
