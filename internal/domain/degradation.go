package domain

// Reasons attached to results that were produced by a fail-open path.
const (
	ReasonServiceAreaLookupFailed   = "service_area_lookup_failed"
	ReasonTenantSettingsUnavailable = "tenant_settings_unavailable"
	ReasonLocationUnresolved        = "location_unresolved"
	ReasonProviderNotImplemented    = "provider_not_implemented"
	ReasonUnexpectedFailure         = "unexpected_failure"
)

// Degradation marks a well-formed result that was computed without one of its
// inputs. A nil *Degradation means the result is a genuine success.
type Degradation struct {
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func Degrade(reason string, err error) *Degradation {
	return &Degradation{Reason: reason, Err: err}
}

func (d *Degradation) Error() string {
	if d.Err == nil {
		return d.Reason
	}
	return d.Reason + ": " + d.Err.Error()
}
