package insight

import "strings"

const DefaultTrackCode = "stem"

type Track struct {
	Code      string
	Name      string
	Note      string
	Reasoning []string
	Focus     string
	Habits    []string
}

var tracks = []Track{
	{
		Code: "stem",
		Name: "Science & Technology",
		Note: "Fits if you enjoy structured problem solving and building things that work.",
		Reasoning: []string{
			"You respond well to clear problems with measurable answers.",
			"Steady focus is an asset in labs, code and engineering projects.",
		},
		Focus:  "Strengthen math and logical reasoning with one small project each month.",
		Habits: []string{"Solve one practice problem a day", "Keep a build log of what you tried and learned"},
	},
	{
		Code: "health",
		Name: "Health & Life Sciences",
		Note: "Fits if caring for people and understanding the body motivates you.",
		Reasoning: []string{
			"Attention to how others feel is the core of clinical work.",
			"Biology and chemistry reward patient, careful study.",
		},
		Focus:  "Build a solid base in biology and chemistry and volunteer where care happens.",
		Habits: []string{"Review one biology topic each evening", "Spend an hour a week helping someone in need"},
	},
	{
		Code: "business",
		Name: "Business & Economics",
		Note: "Fits if you like negotiating, organizing people and seeing numbers move.",
		Reasoning: []string{
			"Confidence in front of others helps in sales, management and founding.",
			"Reading situations quickly turns into good decisions under pressure.",
		},
		Focus:  "Run a tiny venture or club budget to learn how money and people interact.",
		Habits: []string{"Read one business story a day", "Track a personal budget every week"},
	},
	{
		Code: "social",
		Name: "Social Sciences & Humanities",
		Note: "Fits if you are curious about why people and societies behave the way they do.",
		Reasoning: []string{
			"Empathy and observation are the raw tools of psychology, law and education.",
			"You notice nuance that numbers alone do not show.",
		},
		Focus:  "Practice writing arguments and listening to people with different views.",
		Habits: []string{"Journal for ten minutes a day", "Discuss one news topic each week"},
	},
	{
		Code: "creative",
		Name: "Arts, Design & Media",
		Note: "Fits if you express ideas best through images, sound or stories.",
		Reasoning: []string{
			"Expressive energy translates well into design, film and writing.",
			"Creative fields reward a distinct personal voice.",
		},
		Focus:  "Build a portfolio with one finished piece every two weeks.",
		Habits: []string{"Sketch or write something every day", "Share work and ask for one piece of feedback weekly"},
	},
}

var trackIndex = func() map[string]Track {
	m := make(map[string]Track, len(tracks))
	for _, t := range tracks {
		m[t.Code] = t
	}
	return m
}()

// Tracks returns the closed track enumeration in display order.
func Tracks() []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

func TrackCodes() []string {
	codes := make([]string, 0, len(tracks))
	for _, t := range tracks {
		codes = append(codes, t.Code)
	}
	return codes
}

func LookupTrack(code string) (Track, bool) {
	t, ok := trackIndex[strings.ToLower(strings.TrimSpace(code))]
	return t, ok
}

// ResolveTrackCode maps any input onto the enumeration, defaulting to DefaultTrackCode.
func ResolveTrackCode(code string) string {
	if t, ok := LookupTrack(code); ok {
		return t.Code
	}
	return DefaultTrackCode
}
