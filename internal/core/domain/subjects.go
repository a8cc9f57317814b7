package domain

// Entity is the capability bound shared by all eleven collection member
// types: every entity is versioned (via the embedded VersionMeta) and owned
// by one subject.
type Entity interface {
	Subject() string
}

func (p RealEstateProperty) Subject() string  { return p.SubjectID }
func (a BankAccount) Subject() string         { return a.SubjectID }
func (a InvestmentAccount) Subject() string   { return a.SubjectID }
func (b BusinessEntity) Subject() string      { return b.SubjectID }
func (l PersonalLoan) Subject() string        { return l.SubjectID }
func (l CreditLine) Subject() string          { return l.SubjectID }
func (c CreditCard) Subject() string          { return c.SubjectID }
func (s IncomeSource) Subject() string        { return s.SubjectID }
func (p LifeInsurancePolicy) Subject() string { return p.SubjectID }
func (a OtherAsset) Subject() string          { return a.SubjectID }
func (l OtherLiability) Subject() string      { return l.SubjectID }
