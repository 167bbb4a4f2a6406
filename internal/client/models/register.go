package models

// RegistrationType discriminates the registration payload variants.
type RegistrationType string

const (
	RegistrationQuick   RegistrationType = "quick"
	RegistrationFull    RegistrationType = "full"
	RegistrationCompany RegistrationType = "company"
)

// Identity document kinds for full registration.
const (
	IDTypeNational = "id"
	IDTypePassport = "passport"
)

// RegisterRequest is the POST /auth/register body. Only the fields of the
// chosen variant are sent; use the Quick, Full and Company constructors.
type RegisterRequest struct {
	Email            string           `json:"email"`
	Password         string           `json:"password"`
	RegistrationType RegistrationType `json:"registrationType"`

	Name       string `json:"name,omitempty"`
	MiddleName string `json:"middleName,omitempty"`
	Surname    string `json:"surname,omitempty"`
	Age        *int   `json:"age,omitempty"`
	Area       string `json:"area,omitempty"`

	CellNumber              string `json:"cellNumber,omitempty"`
	IDNumber                string `json:"idNumber,omitempty"`
	PassportNumber          string `json:"passportNumber,omitempty"`
	IDType                  string `json:"idType,omitempty"`
	Location                string `json:"location,omitempty"`
	IDFile                  string `json:"idFile,omitempty"`
	CanBecomeVerifiedSeller bool   `json:"canBecomeVerifiedSeller,omitempty"`

	CompanyName    string `json:"companyName,omitempty"`
	CompanyNumber  string `json:"companyNumber,omitempty"`
	CompanyContact string `json:"companyContact,omitempty"`
	CompanyAddress string `json:"companyAddress,omitempty"`
	CompanyEmail   string `json:"companyEmail,omitempty"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
}

// Person carries the personal fields shared by quick and full registration.
type Person struct {
	Name       string
	MiddleName string
	Surname    string
	Age        int // 0 means not given
	Area       string
}

// Identity carries the extra fields of a full (trusted seller) registration.
type Identity struct {
	CellNumber     string
	IDType         string // IDTypeNational or IDTypePassport
	IDNumber       string
	PassportNumber string
	Location       string
	IDFileName     string
}

// Company carries the fields of a company registration.
type Company struct {
	Name    string
	Number  string
	Contact string
	Address string
	Email   string
	Website string
}

func (p Person) apply(r *RegisterRequest) {
	r.Name = p.Name
	r.MiddleName = p.MiddleName
	r.Surname = p.Surname
	r.Area = p.Area
	if p.Age > 0 {
		age := p.Age
		r.Age = &age
	}
}

// QuickRegistration builds a quick-account payload.
func QuickRegistration(email, password string, p Person) RegisterRequest {
	r := RegisterRequest{Email: email, Password: password, RegistrationType: RegistrationQuick}
	p.apply(&r)
	return r
}

// FullRegistration builds a trusted-seller payload. Only the document number
// matching IDType is sent; Location falls back to the area.
func FullRegistration(email, password string, p Person, id Identity) RegisterRequest {
	r := RegisterRequest{Email: email, Password: password, RegistrationType: RegistrationFull}
	p.apply(&r)

	r.CellNumber = id.CellNumber
	r.IDType = id.IDType
	if r.IDType == "" {
		r.IDType = IDTypeNational
	}
	if r.IDType == IDTypePassport {
		r.PassportNumber = id.PassportNumber
	} else {
		r.IDNumber = id.IDNumber
	}
	r.Location = id.Location
	if r.Location == "" {
		r.Location = p.Area
	}
	r.IDFile = id.IDFileName
	r.CanBecomeVerifiedSeller = true
	return r
}

// CompanyRegistration builds a company payload. The company email defaults
// to the account email.
func CompanyRegistration(email, password string, c Company) RegisterRequest {
	r := RegisterRequest{Email: email, Password: password, RegistrationType: RegistrationCompany}
	r.CompanyName = c.Name
	r.CompanyNumber = c.Number
	r.CompanyContact = c.Contact
	r.CompanyAddress = c.Address
	r.CompanyEmail = c.Email
	if r.CompanyEmail == "" {
		r.CompanyEmail = email
	}
	r.CompanyWebsite = c.Website
	return r
}
