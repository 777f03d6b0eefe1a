// Package models defines the domain entities of the ktv karaoke queue.
//
// Media files are identified by filename alone. Filenames follow a small grammar:
//
//	<title>[<tag>]<rest>
//
// where title is everything before the first "[" and tag is the text up to the
// following "]". Typical names look like "Song Name [abc123].mp4".
//
//   - [MediaEntry] : a validated catalog entry with its parsed title and tag
//   - [QueueEntry] : one reservation in a playback queue, addressed by an opaque token
//
// [TitleOf] is used only for display. Equality and matching always use the full filename.
package models
