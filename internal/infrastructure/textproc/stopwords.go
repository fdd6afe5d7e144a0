package textproc

var stopTerms = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "any": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "has": true, "him": true, "his": true, "how": true,
	"man": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "way": true, "who": true, "its": true, "did": true,
	"get": true, "may": true, "this": true, "that": true, "with": true,
	"from": true, "have": true, "they": true, "will": true, "been": true,
	"were": true, "when": true, "where": true, "which": true, "their": true,
	"there": true, "these": true, "those": true, "then": true, "than": true,
	"them": true, "what": true, "your": true, "into": true, "only": true,
	"over": true, "such": true, "some": true, "would": true, "could": true,
	"should": true, "about": true, "after": true, "before": true,
	"other": true, "more": true, "most": true, "also": true, "very": true,
	"each": true, "between": true, "because": true, "through": true,
	"during": true, "under": true, "while": true, "being": true,
	"both": true, "same": true, "does": true, "doing": true,
}
