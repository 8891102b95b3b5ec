package assets

import "fmt"

// DepositConsequence is the verdict on crediting an account.
type DepositConsequence int

const (
	DepositSuccess DepositConsequence = iota
	DepositUnknownAsset
	DepositOverflow
	// DepositBelowMinimum means a new account would hold less than the
	// minimum balance.
	DepositBelowMinimum
	// DepositCannotCreate means the account has no provider reference and
	// the asset is not sufficient.
	DepositCannotCreate
)

func (c DepositConsequence) String() string {
	switch c {
	case DepositSuccess:
		return "success"
	case DepositUnknownAsset:
		return "unknown asset"
	case DepositOverflow:
		return "overflow"
	case DepositBelowMinimum:
		return "below minimum"
	case DepositCannotCreate:
		return "cannot create"
	default:
		return fmt.Sprintf("DepositConsequence(%d)", int(c))
	}
}

// Err returns nil on success, the matching error otherwise.
func (c DepositConsequence) Err() error {
	switch c {
	case DepositSuccess:
		return nil
	case DepositUnknownAsset:
		return ErrUnknown
	case DepositOverflow:
		return ErrOverflow
	case DepositBelowMinimum:
		return ErrBelowMinimum
	case DepositCannotCreate:
		return ErrCannotCreate
	default:
		return fmt.Errorf("unexpected deposit consequence %d", int(c))
	}
}

// WithdrawKind classifies a WithdrawConsequence.
type WithdrawKind int

const (
	WithdrawSuccess WithdrawKind = iota
	WithdrawUnknownAsset
	WithdrawUnderflow
	WithdrawOverflow
	WithdrawFrozen
	WithdrawNoFunds
	// WithdrawReducedToZero means the withdrawal succeeds but the remaining
	// Dust is below the minimum balance and must be swept with it.
	WithdrawReducedToZero
	// WithdrawWouldDie means the account must be kept alive but would drop
	// below the minimum balance.
	WithdrawWouldDie
)

// WithdrawConsequence is the verdict on debiting an account.
type WithdrawConsequence struct {
	Kind WithdrawKind
	Dust Balance
}

func (c WithdrawConsequence) String() string {
	switch c.Kind {
	case WithdrawSuccess:
		return "success"
	case WithdrawUnknownAsset:
		return "unknown asset"
	case WithdrawUnderflow:
		return "underflow"
	case WithdrawOverflow:
		return "overflow"
	case WithdrawFrozen:
		return "frozen"
	case WithdrawNoFunds:
		return "no funds"
	case WithdrawReducedToZero:
		return fmt.Sprintf("reduced to zero (dust %d)", c.Dust)
	case WithdrawWouldDie:
		return "would die"
	default:
		return fmt.Sprintf("WithdrawKind(%d)", int(c.Kind))
	}
}

// Result returns the dust to sweep along with the withdrawal, or the error
// matching the verdict.
func (c WithdrawConsequence) Result() (Balance, error) {
	switch c.Kind {
	case WithdrawSuccess:
		return 0, nil
	case WithdrawReducedToZero:
		return c.Dust, nil
	case WithdrawUnknownAsset:
		return 0, ErrUnknown
	case WithdrawUnderflow:
		return 0, ErrUnderflow
	case WithdrawOverflow:
		return 0, ErrOverflow
	case WithdrawFrozen:
		return 0, ErrFrozen
	case WithdrawNoFunds:
		return 0, ErrNoFunds
	case WithdrawWouldDie:
		return 0, ErrWouldDie
	default:
		return 0, fmt.Errorf("unexpected withdraw consequence %d", int(c.Kind))
	}
}

// Err is Result without the dust.
func (c WithdrawConsequence) Err() error {
	_, err := c.Result()
	return err
}

// canIncrease tells whether who's balance of id may grow by amount.
func (o *op) canIncrease(id AssetID, who AccountID, amount Balance) (DepositConsequence, error) {
	details, ok, err := o.asset(id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return DepositUnknownAsset, nil
	}
	if _, ok := details.Supply.CheckedAdd(amount); !ok {
		return DepositOverflow, nil
	}
	account, _, err := o.balance(id, who)
	if err != nil {
		return 0, err
	}
	if _, ok := account.Balance.CheckedAdd(amount); !ok {
		return DepositOverflow, nil
	}
	if account.Balance == 0 {
		if amount < details.MinBalance {
			return DepositBelowMinimum, nil
		}
		if !details.IsSufficient && o.l.refs.Providers(who) == 0 {
			return DepositCannotCreate, nil
		}
		if details.IsSufficient && details.Sufficients == ^uint32(0) {
			return DepositOverflow, nil
		}
	}
	return DepositSuccess, nil
}

// canDecrease tells whether who's balance of id may shrink by amount.
func (o *op) canDecrease(id AssetID, who AccountID, amount Balance, keepAlive bool) (WithdrawConsequence, error) {
	details, ok, err := o.asset(id)
	if err != nil {
		return WithdrawConsequence{}, err
	}
	if !ok {
		return WithdrawConsequence{Kind: WithdrawUnknownAsset}, nil
	}
	if _, ok := details.Supply.CheckedSub(amount); !ok {
		return WithdrawConsequence{Kind: WithdrawUnderflow}, nil
	}
	if details.IsFrozen {
		return WithdrawConsequence{Kind: WithdrawFrozen}, nil
	}
	account, _, err := o.balance(id, who)
	if err != nil {
		return WithdrawConsequence{}, err
	}
	if account.IsFrozen {
		return WithdrawConsequence{Kind: WithdrawFrozen}, nil
	}
	rest, ok := account.Balance.CheckedSub(amount)
	if !ok {
		return WithdrawConsequence{Kind: WithdrawNoFunds}, nil
	}
	if frozen, ok := o.l.freezer.FrozenBalance(id, who); ok {
		required, ok := frozen.CheckedAdd(details.MinBalance)
		if !ok {
			return WithdrawConsequence{Kind: WithdrawOverflow}, nil
		}
		if rest < required {
			return WithdrawConsequence{Kind: WithdrawFrozen}, nil
		}
	}
	if rest < details.MinBalance {
		// holding an asset never provides for the account, so only the
		// caller can require it to stay alive
		if keepAlive {
			return WithdrawConsequence{Kind: WithdrawWouldDie}, nil
		}
		return WithdrawConsequence{Kind: WithdrawReducedToZero, Dust: rest}, nil
	}
	return WithdrawConsequence{Kind: WithdrawSuccess}, nil
}

// reducibleBalance returns how much of who's balance can be debited.
func (o *op) reducibleBalance(id AssetID, who AccountID, keepAlive bool) (Balance, error) {
	details, ok, err := o.asset(id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrUnknown
	}
	if details.IsFrozen {
		return 0, ErrFrozen
	}
	account, _, err := o.balance(id, who)
	if err != nil {
		return 0, err
	}
	if account.IsFrozen {
		return 0, ErrFrozen
	}
	var amount Balance
	if frozen, ok := o.l.freezer.FrozenBalance(id, who); ok {
		required, ok := frozen.CheckedAdd(details.MinBalance)
		if !ok {
			return 0, ErrOverflow
		}
		amount = account.Balance.SaturatingSub(required)
	} else if keepAlive {
		amount = account.Balance.SaturatingSub(details.MinBalance)
	} else {
		amount = account.Balance
	}
	return min(amount, details.Supply), nil
}
