package insight

import "github.com/rapleeee/face-reading-withAI/internal/model"

type template struct {
	energy             string
	personality        string
	primary            string
	career             [2]model.ManifestingPoint
	future             [2]model.ManifestingPoint
	reasoning          []string
	focus              string
	habits             []string
	confidenceModifier float64
	notes              map[string]string
}

var templates = map[string]template{
	"happy": {
		energy:      "Bright, outgoing energy that lifts the people around you.",
		personality: "Sociable and optimistic, you turn ideas into shared plans quickly.",
		primary:     "business",
		career: [2]model.ManifestingPoint{
			{Title: "Natural connector", Description: "Roles that depend on trust and rapport, such as sales or partnerships, suit you.", Indicator: model.IndicatorStrength},
			{Title: "Team spark", Description: "Leading small teams lets your enthusiasm set the pace.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Wide network", Description: "The relationships you build now will open doors later.", Indicator: model.IndicatorOpportunity},
			{Title: "Spread too thin", Description: "Saying yes to everything can scatter your focus; pick priorities.", Indicator: model.IndicatorWarning},
		},
		reasoning:          []string{"Your warmth makes negotiation and leadership feel natural.", "Optimism helps you recover fast from setbacks."},
		confidenceModifier: 0.05,
		notes:              map[string]string{"social": "Your empathy would also shine in counseling or education.", "creative": "Marketing and media could channel your expressive side."},
	},
	"sad": {
		energy:      "Quiet, reflective energy with deep emotional awareness.",
		personality: "Empathetic and thoughtful, you understand people beneath the surface.",
		primary:     "social",
		career: [2]model.ManifestingPoint{
			{Title: "Deep listener", Description: "Psychology, counseling and teaching reward your patience with people.", Indicator: model.IndicatorStrength},
			{Title: "Meaningful work", Description: "You do your best when the work has a clear human purpose.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Trusted voice", Description: "Over time people will seek you out for advice and perspective.", Indicator: model.IndicatorOpportunity},
			{Title: "Carrying too much", Description: "Protect your energy; absorbing others' problems can wear you down.", Indicator: model.IndicatorWarning},
		},
		focus:              "Practice sharing your insights out loud, not just noticing them.",
		confidenceModifier: -0.05,
		notes:              map[string]string{"creative": "Writing and art give your reflective side a voice.", "health": "Nursing and therapy need exactly your kind of care."},
	},
	"angry": {
		energy:      "Intense, driven energy that refuses to settle.",
		personality: "Direct and determined, you push through obstacles others avoid.",
		primary:     "business",
		career: [2]model.ManifestingPoint{
			{Title: "Relentless drive", Description: "Competitive fields such as entrepreneurship reward your persistence.", Indicator: model.IndicatorStrength},
			{Title: "Decisive leader", Description: "Crisis situations need someone willing to make the hard call.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Big results", Description: "Channelled well, your intensity builds things that last.", Indicator: model.IndicatorOpportunity},
			{Title: "Short fuse", Description: "Learn to pause before reacting so conflict does not cost you allies.", Indicator: model.IndicatorWarning},
		},
		habits:             []string{"Take a ten-minute walk before big decisions", "Write down the goal behind every argument"},
		confidenceModifier: -0.05,
		notes:              map[string]string{"stem": "Engineering challenges give your drive a concrete target."},
	},
	"fear": {
		energy:      "Watchful, careful energy tuned to detail.",
		personality: "Cautious and conscientious, you prepare thoroughly before acting.",
		primary:     "health",
		career: [2]model.ManifestingPoint{
			{Title: "Risk spotter", Description: "Quality, safety and clinical roles need people who notice what can go wrong.", Indicator: model.IndicatorStrength},
			{Title: "Careful practitioner", Description: "Precision-driven work lets your thoroughness stand out.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Reliable expert", Description: "Your preparation will make you the person others rely on.", Indicator: model.IndicatorOpportunity},
			{Title: "Hesitation", Description: "Waiting for perfect certainty can make you miss good chances.", Indicator: model.IndicatorWarning},
		},
		confidenceModifier: -0.1,
		notes:              map[string]string{"stem": "Research and data analysis reward your careful mind."},
	},
	"surprise": {
		energy:      "Curious, spontaneous energy that loves the unexpected.",
		personality: "Open-minded and imaginative, you see possibilities quickly.",
		primary:     "creative",
		career: [2]model.ManifestingPoint{
			{Title: "Idea generator", Description: "Design, media and innovation teams thrive on your curiosity.", Indicator: model.IndicatorStrength},
			{Title: "Fast learner", Description: "New tools and fields do not intimidate you.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Unusual path", Description: "Your career may combine fields in ways nobody planned.", Indicator: model.IndicatorOpportunity},
			{Title: "Unfinished projects", Description: "Novelty is fun; finishing is what builds a reputation.", Indicator: model.IndicatorWarning},
		},
		reasoning:          []string{"Curiosity is the engine of creative work.", "You adapt quickly when a brief changes."},
		focus:              "Finish and publish one project before starting the next.",
		confidenceModifier: 0,
		notes:              map[string]string{"stem": "Product and research roles value your sense of wonder.", "business": "Startups need people who enjoy surprises."},
	},
	"disgust": {
		energy:      "Sharp, discerning energy with high standards.",
		personality: "Critical and principled, you know quickly what is not good enough.",
		primary:     "stem",
		career: [2]model.ManifestingPoint{
			{Title: "Quality guardian", Description: "Engineering review, auditing and research value your critical eye.", Indicator: model.IndicatorStrength},
			{Title: "Standard setter", Description: "You can define how things should be done in your field.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Respected judgement", Description: "Your standards will earn trust as your experience grows.", Indicator: model.IndicatorOpportunity},
			{Title: "Too harsh", Description: "Balance critique with encouragement to keep people on your side.", Indicator: model.IndicatorWarning},
		},
		confidenceModifier: -0.05,
	},
	"neutral": {
		energy:      "Calm, balanced energy that keeps you steady under pressure.",
		personality: "Composed and analytical, you think before you act.",
		primary:     "stem",
		career: [2]model.ManifestingPoint{
			{Title: "Steady focus", Description: "Technical and analytical work benefits from your even temperament.", Indicator: model.IndicatorStrength},
			{Title: "Objective thinker", Description: "You can weigh options fairly, a key skill in planning roles.", Indicator: model.IndicatorOpportunity},
		},
		future: [2]model.ManifestingPoint{
			{Title: "Trusted planner", Description: "Consistency will make you the anchor of future teams.", Indicator: model.IndicatorOpportunity},
			{Title: "Hidden spark", Description: "Show your enthusiasm more so others see your ambition.", Indicator: model.IndicatorWarning},
		},
		confidenceModifier: 0.05,
		notes:              map[string]string{"business": "Finance and operations fit your measured approach."},
	},
}

var defaultTemplate = template{
	energy:      "Balanced energy with room to grow in any direction.",
	personality: "Adaptable and open, you can develop strengths in many fields.",
	primary:     DefaultTrackCode,
	career: [2]model.ManifestingPoint{
		{Title: "Versatile learner", Description: "You can build skills across several disciplines before specializing.", Indicator: model.IndicatorStrength},
		{Title: "Explore first", Description: "Internships and short courses will show where you fit best.", Indicator: model.IndicatorOpportunity},
	},
	future: [2]model.ManifestingPoint{
		{Title: "Many doors", Description: "Keeping options open now gives you flexibility later.", Indicator: model.IndicatorOpportunity},
		{Title: "Decide eventually", Description: "Exploring forever delays mastery; set a date to choose.", Indicator: model.IndicatorWarning},
	},
	confidenceModifier: -0.1,
}

func lookupTemplate(label string) template {
	if t, ok := templates[CanonicalExpression(label)]; ok {
		return t
	}
	return defaultTemplate
}

// BuildFallbackAnalysis selects the static template for an expression label. It is total: unknown
// and empty labels resolve to the default template.
func BuildFallbackAnalysis(label string) Draft {
	t := lookupTemplate(label)
	draft := Draft{
		Energy:      t.energy,
		Personality: t.personality,
		Career:      append([]model.ManifestingPoint(nil), t.career[:]...),
		Future:      append([]model.ManifestingPoint(nil), t.future[:]...),
		Recommendation: DraftRecommendation{
			Primary:   t.primary,
			Reasoning: append([]string(nil), t.reasoning...),
			Focus:     t.focus,
			Habits:    append([]string(nil), t.habits...),
		},
		ConfidenceModifier: t.confidenceModifier,
	}
	for _, code := range TrackCodes() {
		if note, ok := t.notes[code]; ok && code != t.primary {
			draft.Recommendation.Alternatives = append(draft.Recommendation.Alternatives, DraftAlternative{Code: code, Note: note})
		}
	}
	return draft
}
