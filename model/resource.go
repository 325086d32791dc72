package model

import "time"

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}

// CredentialCheck is the outcome of probing the configured credentials
type CredentialCheck struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	AccountID string    `json:"accountId,omitempty"`
	Region    string    `json:"region,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// ProviderInventoryResult is the inventory of a single provider in a multi-cloud fan-out
type ProviderInventoryResult struct {
	Provider  string
	AccountID string
	Instances []Instance
	Breakdown []CostBreakdown
	Error     error
}
