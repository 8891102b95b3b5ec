package assets

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/assets/kv"
)

// Table prefixes. Every key starts with one of them, followed by the
// big-endian asset id so that a prefix scan returns one asset's rows
// ordered by account.
const (
	assetPrefix    = "AS:"
	balancePrefix  = "AB:"
	approvalPrefix = "AP:"
	metadataPrefix = "MD:"
)

func idKey(prefix string, id AssetID) []byte {
	k := make([]byte, len(prefix), len(prefix)+4)
	copy(k, prefix)
	return binary.BigEndian.AppendUint32(k, uint32(id))
}

func assetKey(id AssetID) []byte    { return idKey(assetPrefix, id) }
func metadataKey(id AssetID) []byte { return idKey(metadataPrefix, id) }

func balanceKey(id AssetID, who AccountID) []byte {
	return append(idKey(balancePrefix, id), who...)
}

// approvalKey length-prefixes the owner so that (owner, delegate) pairs
// cannot collide.
func approvalKey(id AssetID, owner, delegate AccountID) []byte {
	k := idKey(approvalPrefix, id)
	k = binary.AppendUvarint(k, uint64(len(owner)))
	k = append(k, owner...)
	return append(k, delegate...)
}

func splitApprovalKey(key []byte) (owner, delegate AccountID, err error) {
	rest := key[len(approvalPrefix)+4:]
	n, size := binary.Uvarint(rest)
	if size <= 0 || uint64(len(rest)-size) < n {
		return "", "", fmt.Errorf("malformed approval key %x", key)
	}
	rest = rest[size:]
	return AccountID(rest[:n]), AccountID(rest[n:]), nil
}

// tables is the typed view of the four ledger tables over a write-set.
type tables struct {
	txn *kv.Txn
	// err is the first record that could not be encoded. The operation
	// fails with it instead of committing.
	err error
}

func (t *tables) load(key []byte, v any) (bool, error) {
	raw, err := t.txn.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("could not decode %q: %w", key, err)
	}
	return true, nil
}

func (t *tables) store(key []byte, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		if t.err == nil {
			t.err = fmt.Errorf("could not encode %q: %w", key, err)
		}
		return
	}
	t.txn.Set(key, raw)
}

func (t *tables) asset(id AssetID) (AssetDetails, bool, error) {
	var d AssetDetails
	ok, err := t.load(assetKey(id), &d)
	return d, ok, err
}

func (t *tables) putAsset(id AssetID, d AssetDetails) { t.store(assetKey(id), d) }
func (t *tables) deleteAsset(id AssetID)              { t.txn.Delete(assetKey(id)) }

// balance returns the balance record of who, the zero record if absent.
func (t *tables) balance(id AssetID, who AccountID) (AssetBalance, bool, error) {
	var b AssetBalance
	ok, err := t.load(balanceKey(id, who), &b)
	return b, ok, err
}

func (t *tables) putBalance(id AssetID, who AccountID, b AssetBalance) {
	t.store(balanceKey(id, who), b)
}

func (t *tables) deleteBalance(id AssetID, who AccountID) { t.txn.Delete(balanceKey(id, who)) }

// balances visits every balance record of id ordered by account.
func (t *tables) balances(id AssetID, fn func(who AccountID, b AssetBalance) error) error {
	prefix := idKey(balancePrefix, id)
	return t.txn.Iterate(prefix, func(key, value []byte) error {
		var b AssetBalance
		if err := json.Unmarshal(value, &b); err != nil {
			return fmt.Errorf("could not decode %q: %w", key, err)
		}
		return fn(AccountID(key[len(prefix):]), b)
	})
}

func (t *tables) approval(id AssetID, owner, delegate AccountID) (Approval, bool, error) {
	var a Approval
	ok, err := t.load(approvalKey(id, owner, delegate), &a)
	return a, ok, err
}

func (t *tables) putApproval(id AssetID, owner, delegate AccountID, a Approval) {
	t.store(approvalKey(id, owner, delegate), a)
}

func (t *tables) deleteApproval(id AssetID, owner, delegate AccountID) {
	t.txn.Delete(approvalKey(id, owner, delegate))
}

// approvals visits every approval of id ordered by owner length, owner then
// delegate.
func (t *tables) approvals(id AssetID, fn func(owner, delegate AccountID, a Approval) error) error {
	return t.txn.Iterate(idKey(approvalPrefix, id), func(key, value []byte) error {
		owner, delegate, err := splitApprovalKey(key)
		if err != nil {
			return err
		}
		var a Approval
		if err := json.Unmarshal(value, &a); err != nil {
			return fmt.Errorf("could not decode %q: %w", key, err)
		}
		return fn(owner, delegate, a)
	})
}

// metadata returns the metadata of id, the zero value if absent.
func (t *tables) metadata(id AssetID) (AssetMetadata, bool, error) {
	var m AssetMetadata
	ok, err := t.load(metadataKey(id), &m)
	return m, ok, err
}

func (t *tables) putMetadata(id AssetID, m AssetMetadata) { t.store(metadataKey(id), m) }
func (t *tables) deleteMetadata(id AssetID)               { t.txn.Delete(metadataKey(id)) }

// assets visits every registered asset in id order.
func (t *tables) assets(fn func(id AssetID, d AssetDetails) error) error {
	return t.txn.Iterate([]byte(assetPrefix), func(key, value []byte) error {
		if len(key) != len(assetPrefix)+4 {
			return fmt.Errorf("malformed asset key %x", key)
		}
		var d AssetDetails
		if err := json.Unmarshal(value, &d); err != nil {
			return fmt.Errorf("could not decode %q: %w", key, err)
		}
		return fn(AssetID(binary.BigEndian.Uint32(key[len(assetPrefix):])), d)
	})
}
