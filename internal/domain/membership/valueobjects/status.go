package valueobjects

// ApplicantStatus is the payment standing of a policy.
type ApplicantStatus string

const (
	StatusPaid    ApplicantStatus = "paid"
	StatusUnpaid  ApplicantStatus = "unpaid"
	StatusSkipped ApplicantStatus = "skipped"
	StatusLapsed  ApplicantStatus = "lapsed"
)

func (s ApplicantStatus) String() string {
	return string(s)
}

var ValidStatuses = map[ApplicantStatus]bool{
	StatusPaid:    true,
	StatusUnpaid:  true,
	StatusSkipped: true,
	StatusLapsed:  true,
}
