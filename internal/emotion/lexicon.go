package emotion

import "github.com/your-org/emoup/internal/models"

// lexiconWords holds the word associations per emotion label. A word may
// carry more than one label. The list is a compact English affect lexicon
// covering the vocabulary wellbeing notes tend to use; it is intentionally
// small enough to embed rather than load from disk.
var lexiconWords = map[models.EmotionLabel][]string{
	models.EmotionHappy: {
		"happy", "happiness", "joy", "joyful", "glad", "delighted", "delight",
		"cheerful", "cheer", "smile", "smiling", "laugh", "laughed", "laughing",
		"love", "loved", "lovely", "wonderful", "great", "amazing", "awesome",
		"excited", "exciting", "fun", "enjoy", "enjoyed", "pleasant", "pleased",
		"grateful", "thankful", "blessed", "proud", "hopeful", "bright",
		"celebrate", "celebrated", "win", "won", "success", "successful",
		"peaceful", "relaxed", "content", "satisfied", "good",
	},
	models.EmotionSad: {
		"sad", "sadness", "unhappy", "depressed", "depressing", "depression",
		"cry", "cried", "crying", "tears", "grief", "grieving", "mourn",
		"lonely", "alone", "loss", "lost", "miss", "missed", "missing",
		"hopeless", "miserable", "sorrow", "heartbroken", "hurt", "hurting",
		"down", "gloomy", "empty", "tired", "exhausted", "worthless",
		"disappointed", "disappointing", "regret", "failure", "failed",
	},
	models.EmotionAngry: {
		"angry", "anger", "mad", "furious", "fury", "rage", "raging",
		"annoyed", "annoying", "irritated", "irritating", "frustrated",
		"frustrating", "frustration", "hate", "hated", "hateful", "hostile",
		"fight", "fought", "fighting", "argument", "argued", "yelled",
		"yelling", "shouted", "unfair", "outraged", "resent", "bitter",
	},
	models.EmotionFear: {
		"fear", "afraid", "scared", "scary", "terrified", "terrifying",
		"terror", "panic", "panicked", "anxious", "anxiety", "worried",
		"worry", "worrying", "nervous", "dread", "frightened", "horror",
		"horrible", "threat", "threatened", "danger", "dangerous", "unsafe",
		"insecure", "uneasy", "stress", "stressed", "stressful", "overwhelmed",
	},
	models.EmotionSurprise: {
		"surprise", "surprised", "surprising", "shocked", "shocking", "shock",
		"astonished", "astonishing", "amazed", "unexpected", "suddenly",
		"sudden", "unbelievable", "incredible", "wow", "stunned", "startled",
		"speechless",
	},
	models.EmotionDisgust: {
		"disgust", "disgusted", "disgusting", "gross", "revolting", "nasty",
		"sick", "sickening", "awful", "terrible", "horrid", "repulsive",
		"vile", "filthy", "rotten", "foul", "nauseous", "nauseating",
		"creepy", "offensive",
	},
	models.EmotionNeutral: {
		"okay", "fine", "normal", "usual", "ordinary", "regular", "routine",
		"average", "typical", "calm", "quiet", "plain", "neutral",
	},
}
