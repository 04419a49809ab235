// Package signature holds the data model and input validation for one
// email signature: the immutable SignatureData value object, the per-field
// validators that gate what may reach the renderer, and the error taxonomy.
package signature

// Input carries the raw field values collected from the CLI, the web form,
// or a deserialized profile, before validation.
type Input struct {
	Name     string
	Position string
	Address  string
	Phone    string
	Mobile   string
	Email    string
	Website  string
	LogoPath string
}

// SignatureData is the validated, immutable record consumed by the layout
// engine. Instances exist only after every present field passed validation;
// construction fails atomically, so no partially-valid instance is ever
// observable.
type SignatureData struct {
	name     string
	position string
	address  string
	phone    string
	mobile   string
	email    string
	website  string
	logoPath string
}

// New validates every field of in and builds a SignatureData. Optional
// fields (phone, mobile, website, logo path) may be empty; a blank website
// resolves to defaultWebsite. The first failing field aborts construction.
func New(in Input, defaultWebsite string) (*SignatureData, error) {
	name, err := ValidateName(in.Name)
	if err != nil {
		return nil, err
	}
	position, err := ValidateRequired("position", in.Position)
	if err != nil {
		return nil, err
	}
	address, err := ValidateRequired("address", in.Address)
	if err != nil {
		return nil, err
	}
	phone, err := ValidatePhone("phone", in.Phone)
	if err != nil {
		return nil, err
	}
	mobile, err := ValidatePhone("mobile", in.Mobile)
	if err != nil {
		return nil, err
	}
	email, err := ValidateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	website, err := ValidateURL(in.Website)
	if err != nil {
		return nil, err
	}
	if website == "" {
		website = defaultWebsite
	}
	logoPath, err := ValidateLogoPath(in.LogoPath)
	if err != nil {
		return nil, err
	}

	return &SignatureData{
		name:     name,
		position: position,
		address:  address,
		phone:    phone,
		mobile:   mobile,
		email:    email,
		website:  website,
		logoPath: logoPath,
	}, nil
}

func (d *SignatureData) Name() string     { return d.name }
func (d *SignatureData) Position() string { return d.position }
func (d *SignatureData) Address() string  { return d.address }
func (d *SignatureData) Phone() string    { return d.phone }
func (d *SignatureData) Mobile() string   { return d.mobile }
func (d *SignatureData) Email() string    { return d.email }
func (d *SignatureData) Website() string  { return d.website }
func (d *SignatureData) LogoPath() string { return d.logoPath }

// Profile is the persisted form of SignatureData, named for reuse. It
// round-trips losslessly through JSON; the store owns the file I/O.
type Profile struct {
	ProfileName string `json:"profile_name"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Address     string `json:"address"`
	Phone       string `json:"phone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	LogoPath    string `json:"logo_path,omitempty"`
}

// ToProfile converts the signature data into its persisted record.
func (d *SignatureData) ToProfile(profileName string) Profile {
	return Profile{
		ProfileName: profileName,
		Name:        d.name,
		Position:    d.position,
		Address:     d.address,
		Phone:       d.phone,
		Mobile:      d.mobile,
		Email:       d.email,
		Website:     d.website,
		LogoPath:    d.logoPath,
	}
}

// FromProfile rebuilds signature data from a persisted record. Deserialized
// values pass through the same validation as fresh input, so a hand-edited
// profile cannot yield an invalid instance.
func FromProfile(p Profile, defaultWebsite string) (*SignatureData, error) {
	return New(Input{
		Name:     p.Name,
		Position: p.Position,
		Address:  p.Address,
		Phone:    p.Phone,
		Mobile:   p.Mobile,
		Email:    p.Email,
		Website:  p.Website,
		LogoPath: p.LogoPath,
	}, defaultWebsite)
}
