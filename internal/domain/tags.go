package domain

// Deploy tags selectable from the CLI.
const (
	TagAll     = "all"
	TagBlue    = "blue"
	TagTokenV2 = "tokenV2"
)

// Logical deployment names.
const (
	TokenDeployment               = "BEP20Token"
	TokenImplementationDeployment = "BEP20Token_Implementation"
	TokenProxyDeployment          = "BEP20Token_Proxy"
	TokenProxyAdminDeployment     = "BEP20TokenProxyAdmin"
	TokenV2Deployment             = "BEP20TokenV2"
)

// Contract (artifact) names.
const (
	TokenContract      = "BEP20Token"
	TokenV2Contract    = "BEP20TokenV2"
	ProxyContract      = "BEP20UpgradeableProxy"
	ProxyAdminContract = "BEP20TokenProxyAdmin"
)

// Named account roles.
const (
	RoleDeployer    = "deployer"
	RoleUser        = "user"
	RoleAnotherUser = "anotherUser"
)

// NamedRoles lists the account roles in their development key order
var NamedRoles = []string{RoleDeployer, RoleUser, RoleAnotherUser}
