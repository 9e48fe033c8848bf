package selection

import "fmt"

// MuxQueueLimit is the muxing queue size appended to every processing plan.
const MuxQueueLimit = 9999

// Directive is one typed instruction for the encoding executor. The set of
// variants is closed.
type Directive interface {
	fmt.Stringer
	directive()
}

// CopyVideo maps every video stream through unchanged.
type CopyVideo struct{}

// CopyStream maps one input stream of Kind to an output slot without
// re-encoding.
type CopyStream struct {
	Kind        StreamType
	InputIndex  int
	OutputIndex int
}

// TranscodeStream adds an encoded companion of an input audio stream.
// Channels is zero unless the count must be forced; Layout is empty unless a
// named layout is known for the forced count.
type TranscodeStream struct {
	InputIndex  int
	OutputIndex int
	Codec       string
	Bitrate     int
	Channels    int
	Layout      string
	Language    string
	Title       string
}

// DisableSubtitles suppresses subtitle output entirely.
type DisableSubtitles struct{}

// RaiseMuxQueueLimit raises the muxer's packet queue limit.
type RaiseMuxQueueLimit struct {
	Size int
}

func (CopyVideo) directive()          {}
func (CopyStream) directive()         {}
func (TranscodeStream) directive()    {}
func (DisableSubtitles) directive()   {}
func (RaiseMuxQueueLimit) directive() {}

func (CopyVideo) String() string { return "copy video" }

func (d CopyStream) String() string {
	short := d.Kind.shortName()
	return fmt.Sprintf("copy %s:%d -> %s:%d", short, d.InputIndex, short, d.OutputIndex)
}

func (d TranscodeStream) String() string {
	out := fmt.Sprintf("transcode a:%d -> a:%d %s %dbps", d.InputIndex, d.OutputIndex, d.Codec, d.Bitrate)
	if d.Channels > 0 {
		out += fmt.Sprintf(" %dch", d.Channels)
	}
	if d.Layout != "" {
		out += " " + d.Layout
	}
	return out + fmt.Sprintf(" [%s] %q", d.Language, d.Title)
}

func (DisableSubtitles) String() string { return "disable subtitles" }

func (d RaiseMuxQueueLimit) String() string {
	return fmt.Sprintf("max muxing queue %d", d.Size)
}
