package lexicon

import "github.com/cognicore/keo/pkg/keo/stoplist"

// defaultSpec returns the built-in vocabulary. Each call returns fresh slices.
func defaultSpec() spec {
	return spec{
		Positive: []string{
			"accomplished", "admire", "adorable", "adored", "advanced", "advantage", "amazing",
			"amused", "appealing", "approve", "astonishing", "attractive", "awesome", "beaming",
			"beautiful", "believe", "beloved", "beneficial", "best", "blessed", "blissful",
			"breathtaking", "bright", "brilliant", "calm", "celebrate", "charming", "cheerful",
			"cherish", "classic", "clean", "comfortable", "confident", "content", "cool", "courageous",
			"creative", "cute", "dazzling", "delighted", "delightful", "distinguished", "divine",
			"eager", "easy", "ecstatic", "effective", "efficient", "effortless", "elated", "elegant",
			"enchanted", "energetic", "engaging", "enjoy", "enthusiastic", "excellent", "excited",
			"exciting", "exquisite", "extraordinary", "exuberant", "fabulous", "fair", "familiar",
			"famous", "fantastic", "fascinating", "favorite", "fearless", "fine", "flourishing",
			"fortunate", "free", "fresh", "friendly", "fun", "funny", "generous", "genius", "genuine",
			"giving", "glamorous", "glorious", "good", "gorgeous", "graceful", "grand", "grateful",
			"great", "handsome", "happy", "harmonious", "healing", "healthy", "heartwarming",
			"heavenly", "helpful", "holy", "honest", "honorable", "honored", "hopeful", "hospitable",
			"humbled", "humorous", "ideal", "imaginative", "impressive", "incredible", "influential",
			"innovative", "insightful", "inspired", "inspiring", "intelligent", "intuitive",
			"inventive", "jolly", "joy", "joyful", "joyous", "jubilant", "just", "keen", "kind",
			"laugh", "legendary", "light", "lively", "love", "lovely", "loving", "loyal", "lucky",
			"luxurious", "magical", "magnificent", "majestic", "marvelous", "masterful", "meaningful",
			"merit", "miraculous", "motivating", "moving", "natural", "nice", "noble", "nurturing",
			"optimistic", "outstanding", "passionate", "patient", "peaceful", "perfect", "phenomenal",
			"picturesque", "playful", "pleasant", "pleased", "pleasurable", "plentiful", "poised",
			"polished", "popular", "positive", "powerful", "precious", "prestigious", "pretty",
			"priceless", "principled", "privileged", "prize", "proactive", "productive", "prominent",
			"proud", "pure", "radiant", "reassuring", "refined", "refreshing", "rejoice", "reliable",
			"remarkable", "renewed", "respected", "resplendent", "revered", "revitalized",
			"revolutionary", "rewarding", "rich", "robust", "romantic", "safe", "satisfied", "scenic",
			"secure", "serene", "sharp", "shining", "sincere", "skillful", "smart", "smile", "soulful",
			"sparkling", "special", "spectacular", "spirited", "spiritual", "splendid", "spotless",
			"stable", "steady", "striking", "strong", "stunning", "stupendous", "stylish", "sublime",
			"successful", "sunny", "superb", "superior", "supportive", "surprising", "sweet",
			"talented", "terrific", "thankful", "thorough", "thrilled", "thriving", "timely", "top",
			"tranquil", "triumphant", "true", "trustworthy", "truthful", "unbiased", "uncommon",
			"unforgettable", "unique", "unwavering", "upbeat", "valiant", "valuable", "vibrant",
			"victorious", "virtuous", "visionary", "vivacious", "warm", "wealthy", "welcome", "well",
			"whole", "wholesome", "willing", "wise", "wonderful", "wondrous", "worthy", "wow",
			"youthful", "zestful",
		},
		Negative: []string{
			"abysmal", "adverse", "afraid", "aggressive", "agitated", "agonizing", "alarmed", "angry",
			"annoyed", "anxious", "apathetic", "appalled", "arrogant", "ashamed", "atrocious", "awful",
			"bad", "banal", "barbed", "belligerent", "bewildered", "bitter", "bizarre", "bleak",
			"bloody", "bored", "boring", "broken", "brutal", "burdensome", "callous", "careless",
			"chaotic", "cheap", "cheated", "clumsy", "coarse", "cold", "collapse", "complicated",
			"conceited", "condemned", "confused", "contagious", "contaminated", "contemptuous",
			"corrupt", "costly", "cowardly", "crazy", "creepy", "criminal", "critical", "cruel",
			"crushing", "cry", "cynical", "damaged", "damaging", "dangerous", "dark", "daunting",
			"dazed", "dead", "deadly", "deceitful", "deceived", "defective", "defenseless", "deficient",
			"dejected", "delinquent", "delirious", "demonic", "deplorable", "depraved", "depressed",
			"deprived", "desperate", "despicable", "destructive", "devastated", "devilish", "difficult",
			"dirt", "dirty", "disadvantaged", "disappointed", "disappointing", "disaster", "disastrous",
			"discontented", "discouraged", "discredited", "disdained", "disgraceful", "disgusted",
			"disgusting", "disheartened", "dishonest", "disillusioned", "dismal", "dismayed",
			"disorderly", "displeased", "disrespectful", "disruptive", "dissatisfied", "distressed",
			"disturbed", "dreadful", "dreary", "dull", "dumb", "dumped", "duped", "enraged", "envious",
			"erroneous", "error", "evil", "exasperated", "exhausted", "expensive", "exploited", "fail",
			"faithless", "fake", "false", "fanatical", "fatal", "fatigued", "faulty", "fear", "fearful",
			"feeble", "fight", "filthy", "finicky", "foolish", "forgotten", "fragile", "frantic",
			"fraudulent", "frazzled", "frightened", "frightening", "frustrated", "furious", "futile",
			"ghastly", "grave", "greed", "greedy", "grief", "grieving", "grim", "gross", "grotesque",
			"gruesome", "grumpy", "guilty", "hard", "harmful", "hate", "hateful", "haunted",
			"heartbroken", "heavyhearted", "helpless", "hesitant", "hideous", "horrible", "horrified",
			"hostile", "hurt", "hurtful", "hysterical", "idiotic", "ignorant", "ill", "immature",
			"imperfect", "impossible", "impotent", "imprudent", "impure", "inability", "inadequate",
			"incapable", "incompetent", "inconsiderate", "inconvenient", "ineffective", "inefficient",
			"inferior", "inflamed", "infuriated", "inhibited", "insecure", "insidious", "insignificant",
			"insincere", "insipid", "insolent", "insulting", "intense", "intimidated", "irrational",
			"irresponsible", "irritated", "isolating", "jealous", "jittery", "jobless", "junky", "lame",
			"lazy", "lethargic", "liar", "livid", "lonely", "lost", "lousy", "low", "ludicrous",
			"lying", "mad", "malevolent", "malicious", "manipulated", "meaningless", "melancholy",
			"menacing", "messy", "miserable", "misleading", "miss", "mistake", "misunderstood", "moan",
			"mocked", "monstrous", "moody", "morbid", "moronic", "mournful", "muddy", "murderous",
			"murky", "nasty", "naughty", "nauseous", "needy", "negative", "neglected", "nervous",
			"neurotic", "noisy", "nonexistent", "nonsense", "obnoxious", "obscene", "odd", "offensive",
			"ominous", "oppressive", "outraged", "overwhelmed", "pain", "pained", "panicked", "panicky",
			"pathetic", "pessimistic", "petty", "phony", "pitiful", "plagued", "pointless", "poisoned",
			"poor", "powerless", "prejudiced", "pressured", "pretentious", "problem", "problematic",
			"provoked", "punished", "pushy", "puzzled", "questionable", "quirky", "quit", "rage",
			"raging", "rainy", "rattled", "rebellious", "regret", "regretful", "rejected", "remorseful",
			"repellent", "reprehensible", "repulsive", "resentful", "restless", "restricted",
			"revengeful", "revolting", "rigid", "risk", "risky", "rotten", "rude", "ruined", "ruthless",
			"sad", "sarcastic", "savage", "scared", "scarred", "scream", "selfish", "severe", "shaky",
			"shame", "shameful", "shocked", "shoddy", "sick", "sickening", "sinful", "skeptical",
			"sloppy", "slow", "sluggish", "smelly", "smoggy", "snobby", "sore", "sorrowful", "sour",
			"spiteful", "stiff", "stolen", "stormy", "strange", "stressed", "stressful", "strict",
			"strife", "stubborn", "stuck", "stunned", "stupid", "substandard", "suffer", "suspicious",
			"tense", "terrible", "terrified", "threatening", "timid", "tired", "tiresome", "tormented",
			"torn", "torture", "toxic", "tragic", "trapped", "traumatic", "treacherous", "trembling",
			"tricky", "trouble", "troubled", "ugly", "unacceptable", "unappreciated", "unattractive",
			"unaware", "unbearable", "unbelievable", "uncertain", "unclear", "uncomfortable",
			"uncontrolled", "uncreative", "undecided", "underestimated", "undesirable", "uneasy",
			"unemployed", "unethical", "unexpected", "unfair", "unfocused", "unforgivable",
			"unforgiving", "unfortunate", "unfriendly", "unfulfilled", "ungrateful", "unhappy",
			"unhealthy", "unhelpful", "unimportant", "uninspired", "unintelligent", "unjust",
			"unlovable", "unloved", "unmotivated", "unpleasant", "unprepared", "unproductive",
			"unprofessional", "unprotected", "unqualified", "unreliable", "unresolved", "unsafe",
			"unsatisfied", "unstable", "unsuccessful", "unsupported", "unsure", "untoward", "unwanted",
			"unwelcome", "unwell", "unwilling", "unwise", "upset", "useless", "vague", "vain",
			"vengeful", "vicious", "vile", "vindictive", "violated", "violent", "volatile",
			"vulnerable", "wary", "weak", "weary", "wicked", "woeful", "worried", "worry", "worse",
			"worst", "worthless", "wounded", "wrong", "yell",
		},
		Negations: []string{
			"not", "no", "never", "isnt", "arent", "wasnt", "werent", "dont", "doesnt", "didnt", "cant",
			"couldnt", "wont", "wouldnt",
		},
		Intensifiers: map[string]float64{
			"very":       1.5,
			"extremely":  2.0,
			"incredibly": 2.0,
			"so":         1.5,
			"really":     1.5,
			"quite":      1.2,
			"somewhat":   0.8,
			"slightly":   0.7,
			"abit":       0.7,
			"bit":        0.7,
		},
		Emotions: []categorySpec{
			{Name: "happy", Keywords: []string{"happy", "joy", "joyful", "cheerful", "delighted", "pleased", "elated", "gleeful", "jolly", "merry", "jubilant", "content", "blissful", "ecstatic", "beaming", "radiant"}},
			{Name: "excited", Keywords: []string{"excited", "thrilled", "enthusiastic", "eager", "pumped", "exuberant", "animated", "electrified", "invigorated", "giddy", "fired up"}},
			{Name: "grateful", Keywords: []string{"grateful", "thankful", "appreciative", "blessed", "indebted", "obliged", "humbled"}},
			{Name: "peaceful", Keywords: []string{"peaceful", "calm", "serene", "tranquil", "relaxed", "at ease", "composed", "placid", "untroubled", "content"}},
			{Name: "proud", Keywords: []string{"proud", "accomplished", "achieved", "successful", "triumphant", "satisfied", "honored", "dignified"}},
			{Name: "love", Keywords: []string{"love", "loving", "adored", "cherished", "affectionate", "devoted", "infatuated", "enamored", "smitten"}},
			{Name: "optimistic", Keywords: []string{"optimistic", "hopeful", "positive", "confident", "encouraged", "buoyant"}},
			{Name: "sad", Keywords: []string{"sad", "down", "blue", "melancholy", "sorrowful", "dejected", "unhappy", "miserable", "heartbroken", "grieving", "somber", "glum", "crestfallen"}},
			{Name: "angry", Keywords: []string{"angry", "mad", "furious", "irritated", "annoyed", "frustrated", "enraged", "livid", "irate", "indignant", "exasperated", "outraged"}},
			{Name: "anxious", Keywords: []string{"anxious", "worried", "nervous", "stressed", "tense", "uneasy", "apprehensive", "fretful", "agitated", "on edge", "troubled"}},
			{Name: "lonely", Keywords: []string{"lonely", "isolated", "alone", "disconnected", "abandoned", "lonesome", "forsaken", "alienated", "ostracized"}},
			{Name: "fearful", Keywords: []string{"fearful", "afraid", "scared", "terrified", "horrified", "petrified", "panicked", "frightened", "intimidated"}},
			{Name: "hurt", Keywords: []string{"hurt", "pained", "wounded", "aching", "offended", "distressed", "devastated", "crushed"}},
			{Name: "guilty", Keywords: []string{"guilty", "ashamed", "regretful", "remorseful", "culpable", "sorry"}},
			{Name: "exhausted", Keywords: []string{"exhausted", "tired", "fatigued", "drained", "worn out", "burnt out", "lethargic", "weary"}},
			{Name: "confused", Keywords: []string{"confused", "puzzled", "uncertain", "unclear", "mixed", "bewildered", "baffled", "perplexed", "disoriented"}},
			{Name: "surprised", Keywords: []string{"surprised", "astonished", "amazed", "shocked", "startled", "stunned", "taken aback"}},
			{Name: "overwhelmed", Keywords: []string{"overwhelmed", "overloaded", "swamped", "inundated", "burdened", "snowed under"}},
		},
		Themes: []categorySpec{
			{Name: "work", Keywords: []string{"work", "job", "career", "office", "boss", "colleague", "project", "deadline", "meeting", "promotion", "corporate", "startup", "coworker"}},
			{Name: "relationships", Keywords: []string{"relationship", "friend", "family", "partner", "love", "date", "marriage", "social", "mom", "dad", "spouse", "child", "sibling", "argument", "connection"}},
			{Name: "health", Keywords: []string{"health", "exercise", "diet", "sleep", "medical", "doctor", "wellness", "fitness", "sick", "gym", "workout", "mental health", "therapy"}},
			{Name: "personal_growth", Keywords: []string{"growth", "learn", "develop", "improve", "goal", "progress", "achievement", "habit", "skill", "self-improvement", "challenge"}},
			{Name: "creativity", Keywords: []string{"creative", "art", "music", "write", "create", "design", "inspiration", "hobby", "paint", "draw", "perform"}},
			{Name: "travel", Keywords: []string{"travel", "trip", "vacation", "journey", "explore", "adventure", "holiday", "destination", "tourist"}},
			{Name: "finances", Keywords: []string{"money", "financial", "budget", "savings", "investment", "expense", "income", "debt", "salary", "bill"}},
			{Name: "spirituality", Keywords: []string{"spiritual", "meditation", "prayer", "faith", "mindfulness", "purpose", "universe", "soul", "belief"}},
			{Name: "education", Keywords: []string{"study", "school", "university", "course", "exam", "homework", "research", "learn", "degree", "student"}},
		},
		Growth: []string{
			"learn", "improve", "better", "progress", "develop", "grow", "achieve", "overcome",
			"challenge",
		},
		Stopwords: stoplist.DefaultTerms(),
	}
}
