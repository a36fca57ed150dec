package export

// Mode selects how loudness normalization is applied to each item.
type Mode string

const (
	// NormNone re-encodes to the target bitrate and channel layout only.
	NormNone Mode = "none"
	// NormSinglePass applies a one-shot dynamic normalization filter in
	// the same invocation as the encode. Fast, slightly less accurate.
	NormSinglePass Mode = "single-pass"
	// NormTwoPass measures integrated loudness first, then applies a
	// linear correction in a second invocation. The two invocations run
	// in sequence for the same item and are never split.
	NormTwoPass Mode = "two-pass"
)

// Profile is the user-chosen export configuration, fixed for the whole run.
type Profile struct {
	Bitrate       string // CBR target, e.g. "128k"
	Channels      int    // 1 = mono, 2 = joint stereo
	Normalization Mode
	StripMetadata bool
	Album         string // album tag written to every output item
	MaxTitleLen   int    // sanitized-title length cap, 0 = unlimited
}
