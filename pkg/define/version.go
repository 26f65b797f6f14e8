package define

// Set by -ldflags at build time.
var (
	Version  = ""
	CommitID = ""
)

const ProgramName = "sshpass"
