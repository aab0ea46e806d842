package model

import "fmt"

// Track addresses one clip on the audio card. Folder 0 is the root mp3
// folder; folders 1 and 2 hold color names and score announcements.
type Track struct {
	Folder uint8
	File   uint8
}

const (
	RootFolder  uint8 = 0
	ColorFolder uint8 = 1
	ScoreFolder uint8 = 2
)

// Root folder file numbers.
const (
	fileInstructions uint8 = 6
	fileTimeout      uint8 = 7
	fileWrong        uint8 = 8
	fileGameOver     uint8 = 9
	fileCorrect      uint8 = 10
	fileMyTurn       uint8 = 11
	fileYourTurn     uint8 = 12
)

// MaxScoreTrack is the highest score with a recorded announcement.
const MaxScoreTrack = 100

var (
	TrackInstructions = Track{RootFolder, fileInstructions}
	TrackTimeout      = Track{RootFolder, fileTimeout}
	TrackWrong        = Track{RootFolder, fileWrong}
	TrackGameOver     = Track{RootFolder, fileGameOver}
	TrackCorrect      = Track{RootFolder, fileCorrect}
	TrackMyTurn       = Track{RootFolder, fileMyTurn}
	TrackYourTurn     = Track{RootFolder, fileYourTurn}
)

// InviteTrack returns invite clip n (1-based).
func InviteTrack(n int) Track { return Track{RootFolder, uint8(n)} }

// ColorTrack returns the spoken name of c.
func ColorTrack(c Color) Track { return Track{ColorFolder, uint8(c) + 1} }

// ScoreTrack returns the announcement for score, or false when no clip
// exists for it.
func ScoreTrack(score int) (Track, bool) {
	if score < 0 || score > MaxScoreTrack {
		return Track{}, false
	}
	return Track{ScoreFolder, uint8(score)}, true
}

// IsInvite reports whether t is one of the root-folder invite clips.
func (t Track) IsInvite() bool {
	return t.Folder == RootFolder && t.File >= 1 && t.File < fileInstructions
}

// Kind names the clip category, used for logs and metric labels.
func (t Track) Kind() string {
	switch t.Folder {
	case ColorFolder:
		return "color"
	case ScoreFolder:
		return "score"
	}
	switch t.File {
	case fileInstructions:
		return "instructions"
	case fileTimeout:
		return "timeout"
	case fileWrong:
		return "wrong"
	case fileGameOver:
		return "game_over"
	case fileCorrect:
		return "correct"
	case fileMyTurn:
		return "my_turn"
	case fileYourTurn:
		return "your_turn"
	}
	if t.IsInvite() {
		return "invite"
	}
	return "unknown"
}

func (t Track) String() string {
	if t.Folder == RootFolder {
		return fmt.Sprintf("/mp3/%04d.mp3", t.File)
	}
	return fmt.Sprintf("/%02d/%03d.mp3", t.Folder, t.File)
}
