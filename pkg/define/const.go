package define

const (
	// PasswordEnv is read when the password should come from the environment.
	PasswordEnv = "SSHPASS"

	// DefaultPasswordPrompt matches both "Password:" and "password:".
	DefaultPasswordPrompt = "assword"

	// HostKeyUnknownPrompt precedes the client's request to trust a new host key.
	HostKeyUnknownPrompt = "The authenticity of host "

	// HostKeyChangedPrompt is printed to the tty when the key of a known host changed.
	// The "REMOTE HOST IDENTIFICATION HAS CHANGED" banner goes to stderr, not the tty,
	// so it is never seen here.
	HostKeyChangedPrompt = "differs from the key for the IP address"

	ControllingTTY = "/dev/tty"

	// ReadBufferSize is the size of a single read from the pty master.
	ReadBufferSize = 256

	// PasswordChunkSize is the size of a single read from a password stream.
	PasswordChunkSize = 40
)

const (
	CtrlC byte = 0x03
	CtrlZ byte = 0x1a
)

const (
	FlagFile     = "file"
	FlagFD       = "fd"
	FlagPassword = "password"
	FlagEnv      = "env"
	FlagPrompt   = "prompt"
	FlagVerbose  = "verbose"
	FlagConfig   = "config"
	FlagVersion  = "version"
)
