package assets

import "fmt"

// Origin is the already authenticated caller of an operation: either a
// signed account or the root (privileged) origin.
type Origin struct {
	who  AccountID
	root bool
}

// Signed returns the origin of a call signed by who.
func Signed(who AccountID) Origin { return Origin{who: who} }

// Root returns the privileged origin.
func Root() Origin { return Origin{root: true} }

// Signer returns the signing account, if any.
func (o Origin) Signer() (AccountID, bool) {
	if o.root || o.who == "" {
		return "", false
	}
	return o.who, true
}

// IsRoot reports whether o is the root origin.
func (o Origin) IsRoot() bool { return o.root }

func (o Origin) String() string {
	if o.root {
		return "root"
	}
	return fmt.Sprintf("signed(%s)", o.who)
}

// ensureSigned returns the signer or ErrBadOrigin.
func ensureSigned(o Origin) (AccountID, error) {
	who, ok := o.Signer()
	if !ok {
		return "", ErrBadOrigin
	}
	return who, nil
}

// ensureForce checks o against the ledger's privileged origin predicate.
func (l *Ledger) ensureForce(o Origin) error {
	if !l.forceOrigin(o) {
		return ErrBadOrigin
	}
	return nil
}

// tryForce returns nil when o is privileged, otherwise the signer that must
// then pass the ownership checks.
func (l *Ledger) tryForce(o Origin) (*AccountID, error) {
	if l.forceOrigin(o) {
		return nil, nil
	}
	who, err := ensureSigned(o)
	if err != nil {
		return nil, err
	}
	return &who, nil
}
