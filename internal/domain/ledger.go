package domain

// CopaymentRecord is the persisted running total of a patient's copayments
// for one calendar year. Records are created on the first copayment of a
// (patient, year) pair, only ever grow within a year, and are independent
// across years.
type CopaymentRecord struct {
	PatientCedula string
	Year          int
	Accumulated   Money
}

// Apply returns the record with amount added to the accumulated total.
func (r CopaymentRecord) Apply(amount Money) CopaymentRecord {
	return CopaymentRecord{
		PatientCedula: r.PatientCedula,
		Year:          r.Year,
		Accumulated:   r.Accumulated.Add(amount),
	}
}
