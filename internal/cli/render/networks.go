package render

import (
	"fmt"
	"io"

	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NetworksRenderer renders the network table
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders one row per network, marking the selected one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "Confirmations", "RPC", "Explorer"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	for _, n := range result.Networks {
		marker := ""
		if n.Current {
			marker = successStyle.Sprint("●")
		}
		name := n.Name
		if n.Development {
			name += labelStyle.Sprint(" (dev)")
		}
		rpc := n.RPCURL
		if rpc == "" {
			rpc = labelStyle.Sprint("in-process")
			if !n.Development {
				rpc = pendingStyle.Sprint("not configured")
			}
		}
		t.AppendRow(table.Row{marker, name, n.ChainID, n.Confirmations, rpc, n.ExplorerURL})
	}
	t.Render()
	return nil
}
