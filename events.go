package assets

import (
	"encoding/json"
	"fmt"
)

// EventKind names the kind of an Event.
type EventKind string

// Event kinds, one per successful operation.
const (
	EvCreated             EventKind = "created"
	EvIssued              EventKind = "issued"
	EvTransferred         EventKind = "transferred"
	EvBurned              EventKind = "burned"
	EvTeamChanged         EventKind = "team-changed"
	EvOwnerChanged        EventKind = "owner-changed"
	EvFrozen              EventKind = "frozen"
	EvThawed              EventKind = "thawed"
	EvAssetFrozen         EventKind = "asset-frozen"
	EvAssetThawed         EventKind = "asset-thawed"
	EvDestroyed           EventKind = "destroyed"
	EvForceCreated        EventKind = "force-created"
	EvMetadataSet         EventKind = "metadata-set"
	EvMetadataCleared     EventKind = "metadata-cleared"
	EvApprovedTransfer    EventKind = "approved-transfer"
	EvApprovalCancelled   EventKind = "approval-cancelled"
	EvTransferredApproved EventKind = "transferred-approved"
	EvAssetStatusChanged  EventKind = "asset-status-changed"
)

// Event describes a committed state change.
type Event interface {
	Kind() EventKind
	AssetID() AssetID
}

// Created is emitted by Create.
type Created struct {
	Asset   AssetID   `json:"asset"`
	Creator AccountID `json:"creator"`
	Owner   AccountID `json:"owner"`
}

// Issued is emitted when Amount is minted to Owner.
type Issued struct {
	Asset  AssetID   `json:"asset"`
	Owner  AccountID `json:"owner"`
	Amount Balance   `json:"amount"`
}

// Transferred is emitted with the amount actually credited to To.
type Transferred struct {
	Asset  AssetID   `json:"asset"`
	From   AccountID `json:"from"`
	To     AccountID `json:"to"`
	Amount Balance   `json:"amount"`
}

// Burned is emitted with the amount actually removed from Owner.
type Burned struct {
	Asset   AssetID   `json:"asset"`
	Owner   AccountID `json:"owner"`
	Balance Balance   `json:"balance"`
}

// TeamChanged is emitted by SetTeam.
type TeamChanged struct {
	Asset   AssetID   `json:"asset"`
	Issuer  AccountID `json:"issuer"`
	Admin   AccountID `json:"admin"`
	Freezer AccountID `json:"freezer"`
}

// OwnerChanged is emitted by TransferOwnership.
type OwnerChanged struct {
	Asset AssetID   `json:"asset"`
	Owner AccountID `json:"owner"`
}

// Frozen is emitted when the account Who is frozen.
type Frozen struct {
	Asset AssetID   `json:"asset"`
	Who   AccountID `json:"who"`
}

// Thawed is emitted when the account Who is thawed.
type Thawed struct {
	Asset AssetID   `json:"asset"`
	Who   AccountID `json:"who"`
}

// AssetFrozen is emitted by FreezeAsset.
type AssetFrozen struct {
	Asset AssetID `json:"asset"`
}

// AssetThawed is emitted by ThawAsset.
type AssetThawed struct {
	Asset AssetID `json:"asset"`
}

// Destroyed is emitted by Destroy.
type Destroyed struct {
	Asset AssetID `json:"asset"`
}

// ForceCreated is emitted by ForceCreate.
type ForceCreated struct {
	Asset AssetID   `json:"asset"`
	Owner AccountID `json:"owner"`
}

// MetadataSet is emitted by SetMetadata and ForceSetMetadata.
type MetadataSet struct {
	Asset    AssetID `json:"asset"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Decimals uint8   `json:"decimals"`
	IsFrozen bool    `json:"isFrozen"`
}

// MetadataCleared is emitted by ClearMetadata and ForceClearMetadata.
type MetadataCleared struct {
	Asset AssetID `json:"asset"`
}

// ApprovedTransfer is emitted when Amount more is approved for Delegate.
type ApprovedTransfer struct {
	Asset    AssetID   `json:"asset"`
	Source   AccountID `json:"source"`
	Delegate AccountID `json:"delegate"`
	Amount   Balance   `json:"amount"`
}

// ApprovalCancelled is emitted when an approval is removed by a cancel.
type ApprovalCancelled struct {
	Asset    AssetID   `json:"asset"`
	Owner    AccountID `json:"owner"`
	Delegate AccountID `json:"delegate"`
}

// TransferredApproved is emitted when a delegate spends an allowance.
type TransferredApproved struct {
	Asset       AssetID   `json:"asset"`
	Owner       AccountID `json:"owner"`
	Delegate    AccountID `json:"delegate"`
	Destination AccountID `json:"destination"`
	Amount      Balance   `json:"amount"`
}

// AssetStatusChanged is emitted by ForceAssetStatus.
type AssetStatusChanged struct {
	Asset AssetID `json:"asset"`
}

func (Created) Kind() EventKind             { return EvCreated }
func (Issued) Kind() EventKind              { return EvIssued }
func (Transferred) Kind() EventKind         { return EvTransferred }
func (Burned) Kind() EventKind              { return EvBurned }
func (TeamChanged) Kind() EventKind         { return EvTeamChanged }
func (OwnerChanged) Kind() EventKind        { return EvOwnerChanged }
func (Frozen) Kind() EventKind              { return EvFrozen }
func (Thawed) Kind() EventKind              { return EvThawed }
func (AssetFrozen) Kind() EventKind         { return EvAssetFrozen }
func (AssetThawed) Kind() EventKind         { return EvAssetThawed }
func (Destroyed) Kind() EventKind           { return EvDestroyed }
func (ForceCreated) Kind() EventKind        { return EvForceCreated }
func (MetadataSet) Kind() EventKind         { return EvMetadataSet }
func (MetadataCleared) Kind() EventKind     { return EvMetadataCleared }
func (ApprovedTransfer) Kind() EventKind    { return EvApprovedTransfer }
func (ApprovalCancelled) Kind() EventKind   { return EvApprovalCancelled }
func (TransferredApproved) Kind() EventKind { return EvTransferredApproved }
func (AssetStatusChanged) Kind() EventKind  { return EvAssetStatusChanged }

func (e Created) AssetID() AssetID             { return e.Asset }
func (e Issued) AssetID() AssetID              { return e.Asset }
func (e Transferred) AssetID() AssetID         { return e.Asset }
func (e Burned) AssetID() AssetID              { return e.Asset }
func (e TeamChanged) AssetID() AssetID         { return e.Asset }
func (e OwnerChanged) AssetID() AssetID        { return e.Asset }
func (e Frozen) AssetID() AssetID              { return e.Asset }
func (e Thawed) AssetID() AssetID              { return e.Asset }
func (e AssetFrozen) AssetID() AssetID         { return e.Asset }
func (e AssetThawed) AssetID() AssetID         { return e.Asset }
func (e Destroyed) AssetID() AssetID           { return e.Asset }
func (e ForceCreated) AssetID() AssetID        { return e.Asset }
func (e MetadataSet) AssetID() AssetID         { return e.Asset }
func (e MetadataCleared) AssetID() AssetID     { return e.Asset }
func (e ApprovedTransfer) AssetID() AssetID    { return e.Asset }
func (e ApprovalCancelled) AssetID() AssetID   { return e.Asset }
func (e TransferredApproved) AssetID() AssetID { return e.Asset }
func (e AssetStatusChanged) AssetID() AssetID  { return e.Asset }

// newEvent returns a pointer to an empty event of kind k.
func newEvent(k EventKind) (any, bool) {
	switch k {
	case EvCreated:
		return &Created{}, true
	case EvIssued:
		return &Issued{}, true
	case EvTransferred:
		return &Transferred{}, true
	case EvBurned:
		return &Burned{}, true
	case EvTeamChanged:
		return &TeamChanged{}, true
	case EvOwnerChanged:
		return &OwnerChanged{}, true
	case EvFrozen:
		return &Frozen{}, true
	case EvThawed:
		return &Thawed{}, true
	case EvAssetFrozen:
		return &AssetFrozen{}, true
	case EvAssetThawed:
		return &AssetThawed{}, true
	case EvDestroyed:
		return &Destroyed{}, true
	case EvForceCreated:
		return &ForceCreated{}, true
	case EvMetadataSet:
		return &MetadataSet{}, true
	case EvMetadataCleared:
		return &MetadataCleared{}, true
	case EvApprovedTransfer:
		return &ApprovedTransfer{}, true
	case EvApprovalCancelled:
		return &ApprovalCancelled{}, true
	case EvTransferredApproved:
		return &TransferredApproved{}, true
	case EvAssetStatusChanged:
		return &AssetStatusChanged{}, true
	}
	return nil, false
}

// MarshalEvent encodes ev as a JSON object whose first field is "event".
func MarshalEvent(ev Event) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("event", ev.Kind())
	w.EmbedFrom(ev)
	return w.MarshalJSON()
}

// UnmarshalEvent decodes an event encoded by MarshalEvent.
func UnmarshalEvent(data []byte) (Event, error) {
	var identifier struct {
		Kind EventKind `json:"event"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify event in %q: %w", data, err)
	}
	ptr, ok := newEvent(identifier.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown event kind %q", identifier.Kind)
	}
	if err := json.Unmarshal(data, ptr); err != nil {
		return nil, fmt.Errorf("could not decode %s event: %w", identifier.Kind, err)
	}
	// dereference so callers compare and switch on values
	switch v := ptr.(type) {
	case *Created:
		return *v, nil
	case *Issued:
		return *v, nil
	case *Transferred:
		return *v, nil
	case *Burned:
		return *v, nil
	case *TeamChanged:
		return *v, nil
	case *OwnerChanged:
		return *v, nil
	case *Frozen:
		return *v, nil
	case *Thawed:
		return *v, nil
	case *AssetFrozen:
		return *v, nil
	case *AssetThawed:
		return *v, nil
	case *Destroyed:
		return *v, nil
	case *ForceCreated:
		return *v, nil
	case *MetadataSet:
		return *v, nil
	case *MetadataCleared:
		return *v, nil
	case *ApprovedTransfer:
		return *v, nil
	case *ApprovalCancelled:
		return *v, nil
	case *TransferredApproved:
		return *v, nil
	case *AssetStatusChanged:
		return *v, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", identifier.Kind)
}
