package tui

import (
	"strings"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// Terminal renditions of the companion. Ears vary per animal, the face
// carries the mood.
var companionEars = map[tracker.Companion]string{
	tracker.CompanionSloth: `  /=====\  `,
	tracker.CompanionPanda: ` (\_____/) `,
	tracker.CompanionBunny: `  (\ /\ /) `,
}

var moodFaces = map[tracker.Mood][2]string{
	tracker.MoodTired:        {` ( -   - ) `, ` (   ~   ) `},
	tracker.MoodHungry:       {` ( o   o ) `, ` (   O   ) `},
	tracker.MoodDisappointed: {` ( ;   ; ) `, ` (   n   ) `},
	tracker.MoodMotivated:    {` ( •   • ) `, ` (   u   ) `},
	tracker.MoodHappy:        {` ( ^   ^ ) `, ` (   v   ) `},
	tracker.MoodFlexing:      {` ( ☆   ☆ ) `, ` (   v   )ﾉ`},
	tracker.MoodFull:         {` ( -   - ) `, ` (   w   ) `},
}

var moodMessages = map[tracker.Mood]string{
	tracker.MoodTired:        "So sleepy... feed me something?",
	tracker.MoodHungry:       "It's been a while. Time to eat!",
	tracker.MoodDisappointed: "We were doing so well today...",
	tracker.MoodMotivated:    "Nice start! Keep it coming.",
	tracker.MoodHappy:        "Looking strong! Almost there.",
	tracker.MoodFlexing:      "GOAL CRUSHED! Look at these gains!",
	tracker.MoodFull:         "Mmm, that hit the spot.",
}

var companionNames = map[tracker.Companion]string{
	tracker.CompanionSloth: "Sloth",
	tracker.CompanionPanda: "Panda",
	tracker.CompanionBunny: "Bunny",
}

// renderAvatar draws the companion with its current mood face.
func renderAvatar(c tracker.Companion, m tracker.Mood) string {
	ears, ok := companionEars[c]
	if !ok {
		ears = companionEars[tracker.CompanionSloth]
	}
	face, ok := moodFaces[m]
	if !ok {
		face = moodFaces[tracker.MoodMotivated]
	}

	lines := []string{
		ears,
		face[0],
		face[1],
		`  \_____/  `,
	}
	return avatarStyle.Render(strings.Join(lines, "\n"))
}

func moodMessage(m tracker.Mood) string {
	if msg, ok := moodMessages[m]; ok {
		return msg
	}
	return ""
}
