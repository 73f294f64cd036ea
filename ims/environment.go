package ims

import (
	"os"
	"strings"
)

// Environment selects which IMS deployment token requests target.
type Environment string

const (
	// EnvironmentProd targets the production IMS deployment.
	EnvironmentProd Environment = "prod"
	// EnvironmentStage targets the staging IMS deployment.
	EnvironmentStage Environment = "stage"
)

const (
	prodBaseURL  = "https://ims-na1.adobelogin.com"
	stageBaseURL = "https://ims-na1-stg1.adobelogin.com"

	// TokenPath is the IMS client-credentials token endpoint path.
	TokenPath = "/ims/token/v2"

	// NamespaceEnvVar is the deployment-namespace variable inspected by
	// DeploymentContextFromEnv.
	NamespaceEnvVar = "__OW_NAMESPACE"

	developmentNamespacePrefix = "development"
)

// ParseEnvironment maps a raw environment string to a known variant.
// Anything other than "stage" (including the empty string) resolves to prod.
func ParseEnvironment(s string) Environment {
	if Environment(strings.ToLower(strings.TrimSpace(s))) == EnvironmentStage {
		return EnvironmentStage
	}
	return EnvironmentProd
}

// BaseURL returns the identity-provider host for the environment.
// Unknown variants fall back to the production host.
func (e Environment) BaseURL() string {
	if e == EnvironmentStage {
		return stageBaseURL
	}
	return prodBaseURL
}

// DeploymentContext carries the ambient deployment configuration that picks a
// default environment when callers do not name one. It is a plain value so
// tests and hosts can inject it instead of reading process environment state.
type DeploymentContext struct {
	// Namespace is the deployment namespace the process runs in.
	// A namespace starting with "development" defaults the environment to stage.
	Namespace string
}

// DefaultEnvironment resolves the environment implied by the deployment
// namespace: stage for development namespaces, prod otherwise.
func (d DeploymentContext) DefaultEnvironment() Environment {
	if strings.HasPrefix(d.Namespace, developmentNamespacePrefix) {
		return EnvironmentStage
	}
	return EnvironmentProd
}

// DeploymentContextFromEnv builds a DeploymentContext from the process
// environment. This is the only ambient environment read in the library.
func DeploymentContextFromEnv() DeploymentContext {
	return DeploymentContext{Namespace: os.Getenv(NamespaceEnvVar)}
}
