package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
)

// DeployRenderer renders the outcome of the deploy drivers
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderRunDeployments prints one line per record the drivers produced
func (r *DeployRenderer) RenderRunDeployments(network string, result *usecase.RunDeploymentsResult) error {
	fmt.Fprintln(r.out, headerStyle.Sprintf("🚀 Deployments on %s", network))
	fmt.Fprintln(r.out)

	if result.Token != nil {
		r.renderRecord(result.Token.Implementation, result.Token.Reused)
		r.renderRecord(result.Token.ProxyAdmin, result.Token.Reused)
		r.renderRecord(result.Token.Proxy, result.Token.Reused)
		r.renderRecord(result.Token.Token, result.Token.Reused)
		if p := result.Token.Params; p.InitialSupply != nil {
			fmt.Fprintf(r.out, "\n  %s %s (%s), %s minted to %s\n",
				labelStyle.Sprint("Token:"), p.Name, p.Symbol,
				FormatAmount(p.InitialSupply, p.Decimals, p.Symbol), p.Owner.Hex())
		}
		if result.Token.VerificationSubmitted {
			fmt.Fprintf(r.out, "  %s\n", pendingStyle.Sprint("⏳ verification submitted in background"))
		}
	}
	if result.TokenV2 != nil {
		r.renderRecord(result.TokenV2.Implementation, result.TokenV2.Reused)
		if result.TokenV2.VerificationSubmitted {
			fmt.Fprintf(r.out, "  %s\n", pendingStyle.Sprint("⏳ verification submitted in background"))
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%d driver(s) executed", len(result.Executed))))
	return nil
}

func (r *DeployRenderer) renderRecord(d *models.Deployment, reused bool) {
	if d == nil {
		return
	}
	status := successStyle.Sprint("deployed")
	if reused {
		status = reusedStyle.Sprint("reused")
	}
	fmt.Fprintf(r.out, "  %-28s %s  %s\n", nameStyle.Sprint(d.Name), addressStyle.Sprint(d.Address), status)
}

// RenderUpgrade prints the implementation before and after an upgrade
func (r *DeployRenderer) RenderUpgrade(result *usecase.UpgradeProxyResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proxy upgraded to %s", result.Target.Name)))
	fmt.Fprintf(r.out, "  Proxy:  %s\n", result.Proxy.Hex())
	fmt.Fprintf(r.out, "  Admin:  %s\n", result.Admin.Hex())
	fmt.Fprintf(r.out, "  Before: %s\n", result.Before.Hex())
	fmt.Fprintf(r.out, "  After:  %s\n", result.After.Hex())
	fmt.Fprintf(r.out, "  Tx:     %s\n", result.TxHash.Hex())
	if result.Receipt != nil {
		fmt.Fprintf(r.out, "  Block:  %d (%d confirmation(s))\n", result.Receipt.BlockNumber, result.Receipt.Confirmations)
	}
	return nil
}

// RenderVerify prints the verification outcome of one record
func (r *DeployRenderer) RenderVerify(result *usecase.VerifyResult) error {
	d := result.Deployment
	switch {
	case result.Skipped:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s not verified: %s", d.Name, strings.Join(result.Errors, "; "))))
	case result.Success && len(result.Errors) > 0:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s: %s", d.Name, strings.Join(result.Errors, "; "))))
	case result.Success:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s verified", d.Name)))
		if d.Verification.URL != "" {
			fmt.Fprintf(r.out, "  %s\n", d.Verification.URL)
		}
	default:
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("verification of %s failed", d.Name)))
		for _, e := range result.Errors {
			fmt.Fprintf(r.out, "  %s\n", e)
		}
	}
	return nil
}
