package models

import (
	"fmt"
	"time"
)

// DeploymentKind represents the role a deployment plays in the proxy triple
type DeploymentKind string

const (
	// ImplementationDeployment is a bare logic contract
	ImplementationDeployment DeploymentKind = "IMPLEMENTATION"
	// ProxyDeployment is the delegating proxy itself
	ProxyDeployment DeploymentKind = "PROXY"
	// ProxyAdminDeployment is the admin allowed to repoint a proxy
	ProxyAdminDeployment DeploymentKind = "PROXY_ADMIN"
	// ProxiedDeployment is the logical, proxy-facing contract
	ProxiedDeployment DeploymentKind = "PROXIED"
)

// VerificationStatus represents the verification status
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusSubmitted  VerificationStatus = "SUBMITTED"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusFailed     VerificationStatus = "FAILED"
	VerificationStatusSkipped    VerificationStatus = "SKIPPED"
)

// Deployment represents a named deployment record
type Deployment struct {
	// Core identification
	Name            string         `json:"name" yaml:"name"`                 // e.g., "BEP20Token_Proxy"
	Network         string         `json:"network" yaml:"network"`           // e.g., "sepolia"
	ChainID         uint64         `json:"chainId" yaml:"chainId"`           // e.g., 11155111
	ContractName    string         `json:"contractName" yaml:"contractName"` // artifact name
	Address         string         `json:"address" yaml:"address"`
	Kind            DeploymentKind `json:"kind" yaml:"kind"`
	TransactionHash string         `json:"transactionHash,omitempty" yaml:"transactionHash,omitempty"`
	BlockNumber     uint64         `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	Deployer        string         `json:"deployer,omitempty" yaml:"deployer,omitempty"`

	// Constructor or initializer arguments, rendered as strings
	Args []string `json:"args" yaml:"args"`

	// Proxy information (null for non-proxied deployments)
	ProxyInfo *ProxyInfo `json:"proxyInfo,omitempty" yaml:"proxyInfo,omitempty"`

	// Verification information
	Verification VerificationInfo `json:"verification" yaml:"verification"`

	// Metadata
	Tags      []string  `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// ProxyInfo contains proxy-specific information
type ProxyInfo struct {
	Proxy          string         `json:"proxy" yaml:"proxy"`
	Admin          string         `json:"admin" yaml:"admin"`
	Implementation string         `json:"implementation" yaml:"implementation"`
	History        []ProxyUpgrade `json:"history" yaml:"history"`
}

// ProxyUpgrade represents a proxy upgrade event
type ProxyUpgrade struct {
	From        string    `json:"from" yaml:"from"`
	To          string    `json:"to" yaml:"to"`
	UpgradeTxID string    `json:"upgradeTxId" yaml:"upgradeTxId"`
	UpgradedAt  time.Time `json:"upgradedAt" yaml:"upgradedAt"`
}

// VerificationInfo contains verification details
type VerificationInfo struct {
	Status     VerificationStatus `json:"status" yaml:"status"`
	URL        string             `json:"url,omitempty" yaml:"url,omitempty"`
	Reason     string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	VerifiedAt *time.Time         `json:"verifiedAt,omitempty" yaml:"verifiedAt,omitempty"`
}

// GetDisplayName returns a human-friendly name for the deployment
func (d *Deployment) GetDisplayName() string {
	if d.ContractName != "" && d.ContractName != d.Name {
		return fmt.Sprintf("%s (%s)", d.Name, d.ContractName)
	}
	return d.Name
}

// ProxyTriple is the proxy, its admin and the implementation it currently
// delegates to.
type ProxyTriple struct {
	Proxy          string `json:"proxy" yaml:"proxy"`
	Admin          string `json:"admin" yaml:"admin"`
	Implementation string `json:"implementation" yaml:"implementation"`
}
