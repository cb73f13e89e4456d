package embed

// Concept lexicon for vocabulary folding.
//
// Plain token hashing gives texts that share no surface vocabulary a
// similarity of zero, even when they speak about the same thing ("charity"
// vs. "love"). Folding each token to a canonical concept term before hashing
// lets paraphrases land on shared vector components while unrelated
// vocabulary stays apart.
//
// The groups below cover common English thematic vocabulary. Tokens outside
// every group pass through unchanged, so the fold never loses information
// for unknown words.

// conceptGroups maps a canonical concept term to its member tokens.
var conceptGroups = map[string][]string{
	"love": {
		"love", "loves", "loved", "loving", "charity", "compassion",
		"kindness", "kind", "beloved", "affection", "mercy", "merciful",
	},
	"divine": {
		"divine", "god", "gods", "holy", "sacred", "heavenly", "lord",
		"spirit", "spiritual",
	},
	"endure": {
		"endure", "endures", "endured", "endurance", "patient", "patience",
		"persevere", "perseverance", "steadfast",
	},
	"hope": {
		"hope", "hopes", "hopeful", "faith", "faithful", "trust", "believe",
		"belief",
	},
	"peace": {
		"peace", "peaceful", "calm", "tranquil", "stillness", "serenity",
	},
	"wisdom": {
		"wisdom", "wise", "knowledge", "understanding", "insight", "discern",
	},
	"truth": {
		"truth", "truthful", "honest", "honesty", "sincere",
	},
	"light": {
		"light", "lights", "radiance", "shine", "shining", "bright",
	},
	"joy": {
		"joy", "joyful", "gladness", "rejoice", "delight", "happiness",
		"happy",
	},
	"sorrow": {
		"sorrow", "grief", "mourn", "mourning", "weep", "weeping", "sadness",
	},
	"strength": {
		"strength", "strong", "mighty", "power", "powerful",
	},
}

// conceptIndex maps each member token to its canonical concept term.
// Built once at package init from conceptGroups.
var conceptIndex = buildConceptIndex()

func buildConceptIndex() map[string]string {
	index := make(map[string]string)
	for concept, members := range conceptGroups {
		for _, m := range members {
			index[m] = concept
		}
	}
	return index
}

// foldConcept returns the canonical concept term for a token, or the token
// itself when it belongs to no group.
func foldConcept(token string) string {
	if concept, ok := conceptIndex[token]; ok {
		return concept
	}
	return token
}
