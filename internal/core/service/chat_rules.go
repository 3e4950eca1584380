package service

import "strings"

// Chat pre-filters. Cheap pattern matches resolve before any paid model call,
// bounding cost and latency for trivial turns. The rules form a total,
// order-sensitive table: the first match wins and later rules are never
// consulted, so an off-topic token cannot override an exact greeting.
//
// The off-topic vocabulary is matched as raw substrings and is intentionally
// coarse: "pm" also trips on words that merely contain it. Documented
// limitation, kept as-is.

var greetingVocab = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
}

var appreciationVocab = []string{
	"thank you", "thanks", "great work", "well done", "appreciate", "good job",
}

var offTopicVocab = []string{
	"pm", "president", "capital", "weather", "politics", "sports",
}

const (
	greetingReply = "Hello! Select an analysis task and upload a medical image, " +
		"or ask me a question about your last analysis."
	appreciationReply = "You're welcome! Glad I could help. Let me know if you have " +
		"any other questions about your analysis."
	offTopicReply = "I can only help with medical image analysis and follow-up " +
		"questions about it. Please keep questions related to your analysis."
	noContextReply = "There is no analysis to discuss yet. Select a task and upload " +
		"an image first."
	modelFailureReply = "Sorry, the analysis service could not answer that right now. " +
		"Please try again."
)

type chatRule struct {
	// name labels the classification for logs and metrics.
	name    string
	matches func(normalized string) bool
	reply   string
}

var chatRules = []chatRule{
	{name: "greeting", matches: equalsAny(greetingVocab), reply: greetingReply},
	{name: "appreciation", matches: containsAny(appreciationVocab), reply: appreciationReply},
	{name: "irrelevant", matches: containsAny(offTopicVocab), reply: offTopicReply},
}

// classifyChat evaluates the rule table against the trimmed, lower-cased
// message. ok is false when no rule matched and the turn should proceed to
// the follow-up / no-context branches.
func classifyChat(message string) (chatRule, bool) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range chatRules {
		if rule.matches(normalized) {
			return rule, true
		}
	}
	return chatRule{}, false
}

func equalsAny(vocab []string) func(string) bool {
	return func(msg string) bool {
		for _, w := range vocab {
			if msg == w {
				return true
			}
		}
		return false
	}
}

func containsAny(vocab []string) func(string) bool {
	return func(msg string) bool {
		for _, w := range vocab {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}
