package core

import (
	"fmt"
	"time"
)

// Policy type identifiers carried over from the policy-admin system.
const (
	PolicyTypeRenewal      = 2
	PrevPolicyTotalLoss    = 3
	breakInTotalLossDays   = -100
	ncbEligibilityLeftDays = -90
)

const dateLayout = "02-01-2006"

// QuoteInput is the raw pricing request. It is immutable once constructed;
// resolved reference data lives on EnrichedQuoteInput.
type QuoteInput struct {
	InsurerID      int `json:"insurer_id"`
	VariantID      int `json:"variant_id"`
	SubVariantID   int `json:"sub_variant_id"`
	VehicleCoverID int `json:"vehicle_cover_id"`
	RTOID          int `json:"rto_id"`

	IDV        float64 `json:"idv"`
	VehicleAge int     `json:"vehicle_age"`

	PolicyTypeID        int    `json:"policy_type_id"`
	PrevPolicyType      int    `json:"prev_policy_type"`
	PrevODPolicyExpDate string `json:"prev_od_policy_exp_date"` // dd-mm-yyyy
	PrevTPPolicyExpDate string `json:"prev_tp_policy_exp_date"` // dd-mm-yyyy

	// DiscountPercent, when set, must not exceed the insurer's allowed maximum.
	DiscountPercent *float64 `json:"discount_percent,omitempty"`

	NonElectricalAccessoriesIDV float64 `json:"non_electrical_accessories_idv"`
	ElectricalAccessoriesIDV    float64 `json:"electrical_accessories_idv"`
	BiFuelKitIDV                float64 `json:"bi_fuel_kit_idv"`

	GeoExtension        bool    `json:"geo_extension"`
	AntiTheft           bool    `json:"antitheft"`
	AAIMember           bool    `json:"aai_member"`
	Handicapped         bool    `json:"handicapped"`
	VoluntaryDeductible float64 `json:"voluntary_deductible"`

	PAPaidDriver        bool `json:"pa_paid_driver"`
	PAUnnamedPassengers bool `json:"pa_unnamed_passengers"`
	CPACover            bool `json:"cpa_cover"`
	LLPaidDriver        bool `json:"ll_paid_driver"`
	LLEmployeeCount     int  `json:"ll_employee_count"`

	NCBCarryForwardID int  `json:"ncb_carry_forward_id"`
	LastYearNCBID     int  `json:"last_year_ncb_id"`
	IsClaim           bool `json:"is_claim"`

	AddonIDs       []int `json:"addon_ids"`
	AddonBundleIDs []int `json:"addon_bundle_ids"`
}

func (in QuoteInput) Validate() error {
	if in.InsurerID <= 0 {
		return fmt.Errorf("%w: missing insurer", ErrValidation)
	}
	if in.VariantID <= 0 {
		return fmt.Errorf("%w: missing variant", ErrValidation)
	}
	if in.VehicleCoverID <= 0 {
		return fmt.Errorf("%w: missing vehicle cover", ErrValidation)
	}
	if in.RTOID <= 0 {
		return fmt.Errorf("%w: missing rto", ErrValidation)
	}
	if in.IDV <= 0 {
		return fmt.Errorf("%w: idv must be > 0", ErrValidation)
	}
	if in.DiscountPercent != nil && *in.DiscountPercent < 0 {
		return fmt.Errorf("%w: discount must be >= 0", ErrValidation)
	}
	if in.LLEmployeeCount < 0 {
		return fmt.Errorf("%w: employee count must be >= 0", ErrValidation)
	}
	return nil
}

// EnrichedQuoteInput is the request plus everything the engines need from
// reference data. Produced by Enrich, never mutated afterwards.
type EnrichedQuoteInput struct {
	QuoteInput

	VehicleClass  string
	VehicleType   string
	FuelTypeCode  string
	CubicCapacity int
	Kilowatt      float64
	RTOZone       string

	ExShowroomPrice float64

	ODTenure int
	TPTenure int

	// DepreciationRate scales accessory IDVs only; the vehicle's own IDV
	// enters the OD computation unreduced.
	DepreciationRate float64
}

// BreakInState is derived once per quote from prior-policy dates.
type BreakInState struct {
	IsBreakIn bool `json:"is_breakin"`
	LeftDays  int  `json:"left_days"`
}

// ODBreakdown is the Own Damage leg of a priced quote. Field names are a
// wire contract with downstream document generation; do not rename.
type ODBreakdown struct {
	Status int `json:"status"`

	BasicOD                       float64 `json:"basic_od"`
	NonElectricalAccessoriesPrice float64 `json:"non_electrical_accessories_price"`
	ElectricalAccessoriesPrice    float64 `json:"electrical_accessories_price"`
	BiFuelKitODPrice              float64 `json:"bi_fuel_kit_od_price"`
	GeoExtensionODPrice           float64 `json:"geo_extension_od_price"`

	AntiTheftDiscount           float64 `json:"anti_theft_discount"`
	AAIMembershipDiscount       float64 `json:"aai_membership_discount"`
	HandicappedDiscount         float64 `json:"handicapped_discount"`
	VoluntaryDeductibleDiscount float64 `json:"voluntary_deductible_discount"`
	NCBDiscount                 float64 `json:"ncb_discount"`

	SubTotalODPremium        float64 `json:"sub_total_od_premium"`
	SubTotalDeductionPremium float64 `json:"sub_total_deduction_premium"`
	NetODPremium             float64 `json:"net_od_premium"`
	ODPremiumPerDay          float64 `json:"od_premium_per_day"`

	ODTenure    int    `json:"od_tenure"`
	ODStartDate string `json:"od_start_date"`
	ODEndDate   string `json:"od_end_date"`

	TotalIDV float64 `json:"total_idv"`
}

// TPBreakdown is the Third Party leg of a priced quote. Wire contract, same
// as ODBreakdown.
type TPBreakdown struct {
	Status int `json:"status"`

	BasicLiability          float64 `json:"basic_liability"`
	BiFuelKitTPPrice        float64 `json:"bi_fuel_kit_tp_price"`
	GeoExtensionTPPrice     float64 `json:"geo_extension_tp_price"`
	PAPaidDriverPrice       float64 `json:"pa_paid_driver_price"`
	PAUnnamedPassengerPrice float64 `json:"pa_unnamed_passenger_price"`
	CPAPrice                float64 `json:"cpa_price"`
	LLPaidDriverPrice       float64 `json:"ll_paid_driver_price"`
	LLEmployeesPrice        float64 `json:"ll_employees_price"`

	TotalTPLiability float64 `json:"total_tp_liability"`
	TotalPACover     float64 `json:"total_pa_cover"`
	TotalLLCover     float64 `json:"total_ll_cover"`

	NetTPPremium    float64 `json:"net_tp_premium"`
	TPPremiumPerDay float64 `json:"tp_premium_per_day"`

	TPTenure    int    `json:"tp_tenure"`
	TPStartDate string `json:"tp_start_date"`
	TPEndDate   string `json:"tp_end_date"`
}

// AddonPrice is one priced addon or addon-bundle line item.
type AddonPrice struct {
	ID      int     `json:"id"`
	Premium float64 `json:"premium"`
}

// Quote is the final priced response. Computed fresh per request, never
// persisted by this service.
type Quote struct {
	ID           string       `json:"id"`
	ODPremium    *ODBreakdown `json:"od_premium,omitempty"`
	TPPremium    *TPBreakdown `json:"tp_premium,omitempty"`
	Addons       []AddonPrice `json:"addons"`
	AddonBundles []AddonPrice `json:"addon_bundles"`
	NetPremium   float64      `json:"net_premium"`
	TotalTax     float64      `json:"total_tax"`
	TotalPremium float64      `json:"total_premium"`
	TotalIDV     float64      `json:"total_idv"`
	IsBreakIn    bool         `json:"is_breakin"`
	LeftDays     int          `json:"left_days"`
	CreatedAt    time.Time    `json:"created_at"`
}

// coverageDates returns the start and end of a coverage leg. A break-in
// policy starts tomorrow and runs the full tenure; a continuous policy
// starts today and ends one day short of the tenure boundary.
func coverageDates(now time.Time, tenureYears int, breakIn bool) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if breakIn {
		start = start.AddDate(0, 0, 1)
	}
	end = start.AddDate(tenureYears, 0, 0)
	if !breakIn {
		end = end.AddDate(0, 0, -1)
	}
	return start, end
}

func round2(x float64) float64 {
	return float64(int64(x*100+0.5)) / 100.0
}
