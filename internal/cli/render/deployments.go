package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// kindOrder is the display order of the deployment sections
var kindOrder = []models.DeploymentKind{
	models.ProxiedDeployment,
	models.ProxyDeployment,
	models.ProxyAdminDeployment,
	models.ImplementationDeployment,
}

// DeploymentsRenderer renders deployment lists as tables grouped by kind
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders the records of one network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintf(r.out, "No deployments found on %s\n", result.Network)
		return nil
	}

	fmt.Fprintln(r.out, headerStyle.Sprintf("⛓  %s", result.Network))
	fmt.Fprintln(r.out)

	for _, kind := range kindOrder {
		var rows []*models.Deployment
		for _, d := range result.Deployments {
			if d.Kind == kind {
				rows = append(rows, d)
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintln(r.out, strings.ToUpper(title(string(kind))))
		r.renderTable(rows)
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	return nil
}

func (r *DeploymentsRenderer) renderTable(deployments []*models.Deployment) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = true
	t.AppendHeader(table.Row{"Name", "Contract", "Address", "Block", "Verification", "Tags"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})

	for _, d := range deployments {
		name := nameStyle.Sprint(d.Name)
		if d.ProxyInfo != nil {
			name += "\n" + labelStyle.Sprintf("└─ impl %s", d.ProxyInfo.Implementation)
		}
		t.AppendRow(table.Row{
			name,
			d.ContractName,
			addressStyle.Sprint(d.Address),
			d.BlockNumber,
			verificationCell(d.Verification),
			tagsStyle.Sprint(strings.Join(d.Tags, ",")),
		})
	}
	t.Render()
}
