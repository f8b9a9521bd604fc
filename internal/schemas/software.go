package schemas

// Software identifies the server software family an instance runs.
// Detection happens via a site probe before an adapter is constructed.
type Software string

const (
	SoftwareLemmy  Software = "lemmy"
	SoftwarePieFed Software = "piefed"
)

// RegistrationMode describes how an instance accepts new accounts.
type RegistrationMode string

const (
	RegistrationClosed             RegistrationMode = "Closed"
	RegistrationRequireApplication RegistrationMode = "RequireApplication"
	RegistrationOpen               RegistrationMode = "Open"
)
