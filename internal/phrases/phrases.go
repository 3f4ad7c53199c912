// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package phrases supplies the greeting line shown to the user. Phrases
// live in phrases.json in the data directory, which is seeded with the
// built-in list the first time it is read.
package phrases

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/muhammadmuzzammil1998/jsonc"
)

const phrasesFile = "phrases.json"

// Defaults is the built-in phrase list.
var Defaults = []string{
	"Every sunrise is a new chance to chase your dreams!",
	"Your only limit is the one you set for yourself.",
	"Keep going, the view from the top is worth the climb!",
	"Small steps today lead to giant leaps tomorrow.",
	"You are stronger than yesterday and braver than you know",
	"Believe in yourself even when no one else does.",
	"The best time to start was yesterday. The next best time is now!",
	"Turn your wounds into wisdom and your setbacks into comebacks.",
	"You don't have to be great to start, but you have to start to be great.",
	"Difficult roads often lead to beautiful destinations",
	"Fall seven times, stand up eight.",
	"Your future is created by what you do today, not tomorrow.",
	"Be the energy you want to attract",
	"Progress, not perfection. Keep moving forward!",
	"The comeback is always stronger than the setback.",
	"You were born to make an impact, so go out and do it!",
	"Doubt kills more dreams than failure ever will. Keep believing.",
	"Inhale confidence, exhale doubt",
	"You're one decision away from a totally different life.",
	"Stay patient and trust your journey, everything is falling into place",
}

type document struct {
	Phrases []string `json:"phrases"`
}

// Load returns the phrases in dataDir/phrases.json, writing the defaults
// there first when the file does not exist. Unreadable files and empty
// lists yield the defaults.
func Load(dataDir string) []string {
	path := filepath.Join(dataDir, phrasesFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if data, err := json.MarshalIndent(document{Phrases: Defaults}, "", "  "); err == nil {
			_ = os.WriteFile(path, data, 0o644)
		}
		return Defaults
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults
	}
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil || len(doc.Phrases) == 0 {
		return Defaults
	}
	return doc.Phrases
}

// Pick returns a random phrase, or "" for an empty list.
func Pick(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[rand.Intn(len(list))]
}

// Greeting formats the line shown under the editors.
func Greeting(username string, list []string) string {
	if p := Pick(list); p != "" {
		return fmt.Sprintf("Hi %s • %s", username, p)
	}
	return fmt.Sprintf("Hi %s", username)
}
