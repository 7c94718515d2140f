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

// TokenRenderer renders token state and token transactions
type TokenRenderer struct {
	out io.Writer
}

// NewTokenRenderer creates a new token renderer
func NewTokenRenderer(out io.Writer) *TokenRenderer {
	return &TokenRenderer{out: out}
}

// RenderTokenInfo renders the token snapshot with one balance row per holder
func (r *TokenRenderer) RenderTokenInfo(info *models.TokenInfo) error {
	fmt.Fprintln(r.out, headerStyle.Sprintf("%s (%s)", info.Name, info.Symbol))
	fmt.Fprintln(r.out, strings.Repeat("=", 80))
	fmt.Fprintf(r.out, "  Address: %s\n", info.Address.Hex())
	fmt.Fprintf(r.out, "  Owner: %s\n", info.Owner.Hex())
	fmt.Fprintf(r.out, "  Decimals: %d\n", info.Decimals)
	fmt.Fprintf(r.out, "  Total Supply: %s\n", FormatAmount(info.TotalSupply, info.Decimals, info.Symbol))
	fmt.Fprintf(r.out, "  Mintable: %t\n", info.Mintable)

	if info.Proxy != nil {
		fmt.Fprintln(r.out, "\nProxy:")
		fmt.Fprintf(r.out, "  Proxy: %s\n", info.Proxy.Proxy)
		fmt.Fprintf(r.out, "  Admin: %s\n", info.Proxy.Admin)
		fmt.Fprintf(r.out, "  Implementation: %s\n", info.Proxy.Implementation)
	}

	if len(info.Balances) == 0 {
		return nil
	}
	fmt.Fprintln(r.out, "\nBalances:")
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Account", "Address", "Balance"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	for _, b := range info.Balances {
		t.AppendRow(table.Row{nameStyle.Sprint(b.Name), b.Address.Hex(), FormatAmount(b.Balance, info.Decimals, "")})
	}
	t.Render()
	return nil
}

// RenderTransfer renders a completed transfer
func (r *TokenRenderer) RenderTransfer(result *usecase.TransferTokensResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s",
		FormatAmount(result.Amount, result.Decimals, ""), result.From.Hex(), result.To.Hex())))
	fmt.Fprintf(r.out, "  Tx: %s\n", result.TxHash.Hex())
	for _, e := range result.Transfers {
		fmt.Fprintf(r.out, "  %s %s → %s %s\n", labelStyle.Sprint("Transfer"),
			e.From.Hex(), e.To.Hex(), FormatAmount(e.Value, result.Decimals, ""))
	}
	fmt.Fprintf(r.out, "  Sender balance: %s\n", FormatAmount(result.FromBalance, result.Decimals, ""))
	fmt.Fprintf(r.out, "  Recipient balance: %s\n", FormatAmount(result.ToBalance, result.Decimals, ""))
	return nil
}

// RenderMint renders a completed mint
func (r *TokenRenderer) RenderMint(result *usecase.MintTokensResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Minted %s to %s",
		FormatAmount(result.Amount, result.Decimals, ""), result.Minter.Hex())))
	fmt.Fprintf(r.out, "  Tx: %s\n", result.TxHash.Hex())
	fmt.Fprintf(r.out, "  Total supply: %s\n", FormatAmount(result.TotalSupply, result.Decimals, ""))
	fmt.Fprintf(r.out, "  Minter balance: %s\n", FormatAmount(result.Balance, result.Decimals, ""))
	return nil
}

// RenderBlacklist renders a blacklist update
func (r *TokenRenderer) RenderBlacklist(result *usecase.BlacklistAccountsResult) error {
	action := "Blacklisted"
	if result.Removed {
		action = "Removed from blacklist"
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %d account(s)", action, len(result.Accounts))))
	for _, account := range result.Accounts {
		fmt.Fprintf(r.out, "  %s\n", account.Hex())
	}
	fmt.Fprintf(r.out, "  Tx: %s\n", result.TxHash.Hex())
	return nil
}
