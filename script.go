package assets

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// CommandType names a ledger call.
type CommandType string

const (
	CmdCreate              CommandType = "create"
	CmdForceCreate         CommandType = "force-create"
	CmdDestroy             CommandType = "destroy"
	CmdMint                CommandType = "mint"
	CmdBurn                CommandType = "burn"
	CmdTransfer            CommandType = "transfer"
	CmdTransferKeepAlive   CommandType = "transfer-keep-alive"
	CmdForceTransfer       CommandType = "force-transfer"
	CmdFreeze              CommandType = "freeze"
	CmdThaw                CommandType = "thaw"
	CmdFreezeAsset         CommandType = "freeze-asset"
	CmdThawAsset           CommandType = "thaw-asset"
	CmdTransferOwnership   CommandType = "transfer-ownership"
	CmdSetTeam             CommandType = "set-team"
	CmdSetMetadata         CommandType = "set-metadata"
	CmdClearMetadata       CommandType = "clear-metadata"
	CmdForceSetMetadata    CommandType = "force-set-metadata"
	CmdForceClearMetadata  CommandType = "force-clear-metadata"
	CmdForceAssetStatus    CommandType = "force-asset-status"
	CmdApproveTransfer     CommandType = "approve-transfer"
	CmdCancelApproval      CommandType = "cancel-approval"
	CmdForceCancelApproval CommandType = "force-cancel-approval"
	CmdTransferApproved    CommandType = "transfer-approved"
	// CmdEndow credits native funds to an account. It is carried by scripts
	// for the account service and is not a ledger call.
	CmdEndow CommandType = "endow"
)

// Call is one ledger call with its origin, as stored in a script. Only the
// fields the command uses are meaningful.
type Call struct {
	Command CommandType `json:"command"`
	// As is the signer; Root selects the privileged origin instead.
	As   AccountID `json:"as,omitempty"`
	Root bool      `json:"root,omitempty"`

	Asset AssetID `json:"asset"`
	// Who is the account minted to, burned from, frozen or endowed.
	Who      AccountID `json:"who,omitempty"`
	From     AccountID `json:"from,omitempty"`
	To       AccountID `json:"to,omitempty"`
	Owner    AccountID `json:"owner,omitempty"`
	Issuer   AccountID `json:"issuer,omitempty"`
	Admin    AccountID `json:"admin,omitempty"`
	Freezer  AccountID `json:"freezer,omitempty"`
	Delegate AccountID `json:"delegate,omitempty"`

	Amount       Balance `json:"amount,omitempty"`
	MinBalance   Balance `json:"minBalance,omitempty"`
	IsSufficient bool    `json:"sufficient,omitempty"`
	IsFrozen     bool    `json:"frozen,omitempty"`

	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals uint8  `json:"decimals,omitempty"`

	Witness *DestroyWitness `json:"witness,omitempty"`
}

// Origin returns the origin the call is made with.
func (c Call) Origin() Origin {
	if c.Root {
		return Root()
	}
	return Signed(c.As)
}

// MarshalJSON writes the command, then the origin, then the arguments.
func (c Call) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", c.Command)
	w.Optional("as", c.As)
	w.Optional("root", c.Root)
	w.Append("asset", c.Asset)
	w.Optional("who", c.Who)
	w.Optional("from", c.From)
	w.Optional("to", c.To)
	w.Optional("owner", c.Owner)
	w.Optional("issuer", c.Issuer)
	w.Optional("admin", c.Admin)
	w.Optional("freezer", c.Freezer)
	w.Optional("delegate", c.Delegate)
	w.Optional("amount", c.Amount)
	w.Optional("minBalance", c.MinBalance)
	w.Optional("sufficient", c.IsSufficient)
	w.Optional("frozen", c.IsFrozen)
	w.Optional("name", c.Name)
	w.Optional("symbol", c.Symbol)
	w.Optional("decimals", c.Decimals)
	if c.Witness != nil {
		w.Append("witness", c.Witness)
	}
	return w.MarshalJSON()
}

// Apply runs the call against l.
func (c Call) Apply(l *Ledger) error {
	o := c.Origin()
	switch c.Command {
	case CmdCreate:
		return l.Create(o, c.Asset, c.Admin, c.MinBalance)
	case CmdForceCreate:
		return l.ForceCreate(o, c.Asset, c.Owner, c.IsSufficient, c.MinBalance)
	case CmdDestroy:
		if c.Witness == nil {
			return fmt.Errorf("destroy of asset %v needs a witness", c.Asset)
		}
		_, err := l.Destroy(o, c.Asset, *c.Witness)
		return err
	case CmdMint:
		return l.Mint(o, c.Asset, c.Who, c.Amount)
	case CmdBurn:
		return l.Burn(o, c.Asset, c.Who, c.Amount)
	case CmdTransfer:
		return l.Transfer(o, c.Asset, c.To, c.Amount)
	case CmdTransferKeepAlive:
		return l.TransferKeepAlive(o, c.Asset, c.To, c.Amount)
	case CmdForceTransfer:
		return l.ForceTransfer(o, c.Asset, c.From, c.To, c.Amount)
	case CmdFreeze:
		return l.Freeze(o, c.Asset, c.Who)
	case CmdThaw:
		return l.Thaw(o, c.Asset, c.Who)
	case CmdFreezeAsset:
		return l.FreezeAsset(o, c.Asset)
	case CmdThawAsset:
		return l.ThawAsset(o, c.Asset)
	case CmdTransferOwnership:
		return l.TransferOwnership(o, c.Asset, c.Owner)
	case CmdSetTeam:
		return l.SetTeam(o, c.Asset, c.Issuer, c.Admin, c.Freezer)
	case CmdSetMetadata:
		return l.SetMetadata(o, c.Asset, c.Name, c.Symbol, c.Decimals)
	case CmdClearMetadata:
		return l.ClearMetadata(o, c.Asset)
	case CmdForceSetMetadata:
		return l.ForceSetMetadata(o, c.Asset, c.Name, c.Symbol, c.Decimals, c.IsFrozen)
	case CmdForceClearMetadata:
		return l.ForceClearMetadata(o, c.Asset)
	case CmdForceAssetStatus:
		return l.ForceAssetStatus(o, c.Asset, AssetStatus{
			Owner:        c.Owner,
			Issuer:       c.Issuer,
			Admin:        c.Admin,
			Freezer:      c.Freezer,
			MinBalance:   c.MinBalance,
			IsSufficient: c.IsSufficient,
			IsFrozen:     c.IsFrozen,
		})
	case CmdApproveTransfer:
		return l.ApproveTransfer(o, c.Asset, c.Delegate, c.Amount)
	case CmdCancelApproval:
		return l.CancelApproval(o, c.Asset, c.Delegate)
	case CmdForceCancelApproval:
		return l.ForceCancelApproval(o, c.Asset, c.Owner, c.Delegate)
	case CmdTransferApproved:
		return l.TransferApproved(o, c.Asset, c.Owner, c.To, c.Amount)
	default:
		return fmt.Errorf("unknown ledger command: %q", c.Command)
	}
}

// DecodeScript reads one call per line from r. Empty lines are skipped.
func DecodeScript(r io.Reader) ([]Call, error) {
	var calls []Call
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var c Call
		if err := json.Unmarshal(lineBytes, &c); err != nil {
			return nil, fmt.Errorf("line %d: could not decode call %q: %w", line, lineBytes, err)
		}
		if c.Command == "" {
			return nil, fmt.Errorf("line %d: missing command", line)
		}
		calls = append(calls, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return calls, nil
}

// EncodeScript writes calls to w, one per line.
func EncodeScript(w io.Writer, calls []Call) error {
	for _, c := range calls {
		line, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("could not encode %s call: %w", c.Command, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
