package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by show
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format string) (*DeploymentRenderer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}
	return &DeploymentRenderer{out: out, format: format}, nil
}

type deploymentOutput struct {
	Deployment     *models.Deployment `json:"deployment" yaml:"deployment"`
	Implementation *models.Deployment `json:"implementation,omitempty" yaml:"implementation,omitempty"`
}

// RenderDeployment renders the deployment in the configured format
func (r *DeploymentRenderer) RenderDeployment(result *usecase.ShowDeploymentResult) error {
	output := deploymentOutput{Deployment: result.Deployment, Implementation: result.Implementation}
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(output)
	}
	return r.renderText(result)
}

func (r *DeploymentRenderer) renderText(result *usecase.ShowDeploymentResult) error {
	d := result.Deployment

	fmt.Fprintln(r.out, headerStyle.Sprintf("Deployment: %s", d.Name))
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", nameStyle.Sprint(d.ContractName))
	fmt.Fprintf(r.out, "  Address: %s\n", d.Address)
	fmt.Fprintf(r.out, "  Kind: %s\n", title(string(d.Kind)))
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", d.Network, d.ChainID)
	if len(d.Tags) > 0 {
		fmt.Fprintf(r.out, "  Tags: %s\n", tagsStyle.Sprint(strings.Join(d.Tags, ", ")))
	}

	if len(d.Args) > 0 {
		fmt.Fprintln(r.out, "\nArguments:")
		for i, arg := range d.Args {
			fmt.Fprintf(r.out, "  [%d] %s\n", i, arg)
		}
	}

	if d.ProxyInfo != nil {
		fmt.Fprintln(r.out, "\nProxy Information:")
		fmt.Fprintf(r.out, "  Proxy: %s\n", d.ProxyInfo.Proxy)
		fmt.Fprintf(r.out, "  Admin: %s\n", d.ProxyInfo.Admin)
		impl := d.ProxyInfo.Implementation
		if result.Implementation != nil {
			impl = fmt.Sprintf("%s (%s)", impl, result.Implementation.Name)
		}
		fmt.Fprintf(r.out, "  Implementation: %s\n", impl)
		if len(d.ProxyInfo.History) > 0 {
			fmt.Fprintln(r.out, "  Upgrade History:")
			for _, upgrade := range d.ProxyInfo.History {
				fmt.Fprintf(r.out, "    %s → %s at %s (tx %s)\n",
					upgrade.From, upgrade.To, upgrade.UpgradedAt.Format(timestampForm), upgrade.UpgradeTxID)
			}
		}
	}

	if d.TransactionHash != "" {
		fmt.Fprintln(r.out, "\nTransaction:")
		fmt.Fprintf(r.out, "  Hash: %s\n", d.TransactionHash)
		fmt.Fprintf(r.out, "  Block: %d\n", d.BlockNumber)
		if d.Deployer != "" {
			fmt.Fprintf(r.out, "  Deployer: %s\n", d.Deployer)
		}
	}

	fmt.Fprintln(r.out, "\nVerification:")
	fmt.Fprintf(r.out, "  Status: %s\n", verificationCell(d.Verification))
	if d.Verification.URL != "" {
		fmt.Fprintf(r.out, "  URL: %s\n", d.Verification.URL)
	}
	if d.Verification.Reason != "" {
		fmt.Fprintf(r.out, "  Reason: %s\n", d.Verification.Reason)
	}

	fmt.Fprintln(r.out, "\nTimestamps:")
	fmt.Fprintf(r.out, "  Created: %s\n", d.CreatedAt.Format(timestampForm))
	fmt.Fprintf(r.out, "  Updated: %s\n", d.UpdatedAt.Format(timestampForm))
	return nil
}
