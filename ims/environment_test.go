package ims

import "testing"

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Environment
	}{
		{name: "stage", in: "stage", want: EnvironmentStage},
		{name: "stage with spacing", in: "  Stage ", want: EnvironmentStage},
		{name: "prod", in: "prod", want: EnvironmentProd},
		{name: "empty", in: "", want: EnvironmentProd},
		{name: "unknown", in: "qa", want: EnvironmentProd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseEnvironment(tt.in); got != tt.want {
				t.Errorf("ParseEnvironment(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnvironment_BaseURL(t *testing.T) {
	if got := EnvironmentProd.BaseURL(); got != "https://ims-na1.adobelogin.com" {
		t.Errorf("unexpected prod base URL: %s", got)
	}

	if got := EnvironmentStage.BaseURL(); got != "https://ims-na1-stg1.adobelogin.com" {
		t.Errorf("unexpected stage base URL: %s", got)
	}

	// Unknown variants fall back to production.
	if got := Environment("qa").BaseURL(); got != "https://ims-na1.adobelogin.com" {
		t.Errorf("unknown environment should use prod base URL, got %s", got)
	}
}

func TestDeploymentContext_DefaultEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		want      Environment
	}{
		{name: "development namespace", namespace: "development-1234", want: EnvironmentStage},
		{name: "bare development", namespace: "development", want: EnvironmentStage},
		{name: "production namespace", namespace: "acme-app", want: EnvironmentProd},
		{name: "empty namespace", namespace: "", want: EnvironmentProd},
		{name: "development elsewhere in name", namespace: "acme-development", want: EnvironmentProd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DeploymentContext{Namespace: tt.namespace}
			if got := d.DefaultEnvironment(); got != tt.want {
				t.Errorf("namespace %q: got %s, want %s", tt.namespace, got, tt.want)
			}
		})
	}
}

func TestDeploymentContextFromEnv(t *testing.T) {
	t.Setenv(NamespaceEnvVar, "development-9999")

	d := DeploymentContextFromEnv()
	if d.Namespace != "development-9999" {
		t.Errorf("unexpected namespace: %s", d.Namespace)
	}

	if d.DefaultEnvironment() != EnvironmentStage {
		t.Error("development namespace should default to stage")
	}
}
