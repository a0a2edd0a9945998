package core

import (
	"context"
	"fmt"
	"time"
)

// BreakInResolver decides whether a quote is a break-in (continuity gap
// since the prior policy) and how many days remain until, or have passed
// since, the reference expiry.
type BreakInResolver struct {
	gateway ReferenceDataGateway
	clock   func() time.Time
	loc     *time.Location
}

func NewBreakInResolver(gateway ReferenceDataGateway) *BreakInResolver {
	return &BreakInResolver{
		gateway: gateway,
		clock:   time.Now,
		loc:     ratingLocation(),
	}
}

// Resolve evaluates the break-in rules in order; the first match wins.
// Malformed expiry dates are fatal parse errors surfaced to the caller.
func (r *BreakInResolver) Resolve(ctx context.Context, in QuoteInput) (BreakInState, error) {
	// Total loss: prior vehicle is gone, treat as lapsed long ago.
	if in.PrevPolicyType == PrevPolicyTotalLoss {
		return BreakInState{IsBreakIn: true, LeftDays: breakInTotalLossDays}, nil
	}

	if in.PolicyTypeID != PolicyTypeRenewal {
		return BreakInState{}, nil
	}

	cover, err := r.gateway.GetVehicleCover(ctx, in.VehicleCoverID)
	if err != nil {
		return BreakInState{}, err
	}

	var expiry time.Time
	switch {
	case cover.ODTenure > 0 && cover.TPTenure > 0:
		odExp, err := r.parseDate(in.PrevODPolicyExpDate)
		if err != nil {
			return BreakInState{}, err
		}
		tpExp, err := r.parseDate(in.PrevTPPolicyExpDate)
		if err != nil {
			return BreakInState{}, err
		}
		expiry = odExp
		if tpExp.After(odExp) {
			expiry = tpExp
		}
	case cover.ODTenure > 0:
		if expiry, err = r.parseDate(in.PrevODPolicyExpDate); err != nil {
			return BreakInState{}, err
		}
	case cover.TPTenure > 0:
		if expiry, err = r.parseDate(in.PrevTPPolicyExpDate); err != nil {
			return BreakInState{}, err
		}
	default:
		return BreakInState{}, nil
	}

	now := r.clock().In(r.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
	leftDays := int(expiry.Sub(today).Hours() / 24)

	return BreakInState{IsBreakIn: expiry.Before(today), LeftDays: leftDays}, nil
}

func (r *BreakInResolver) parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, r.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse policy expiry date %q: %w", s, err)
	}
	return t, nil
}

// ratingLocation returns the zone all policy dates are computed in.
func ratingLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}
