// Package intent triages chat messages into small-talk categories before they
// reach the retrieval pipeline.
package intent

import "strings"

// Intent is the category assigned to a user message.
type Intent string

const (
	Greeting   Intent = "greeting"
	Goodbye    Intent = "goodbye"
	Thanks     Intent = "thanks"
	Chitchat   Intent = "chitchat"
	Feedback   Intent = "feedback"
	LegalQuery Intent = "legal_query"
)

type rule struct {
	intent  Intent
	phrases []string
}

// rules are checked in order; the first rule with a matching phrase wins.
// LegalQuery has no rule, it is what Classify returns when nothing matches.
var rules = []rule{
	{Greeting, []string{"hi", "hello", "hey", "good morning", "good evening"}},
	{Goodbye, []string{"bye", "goodbye", "see you", "take care"}},
	{Thanks, []string{"thanks", "thank you", "much appreciated"}},
	{Chitchat, []string{"what's up", "how are you", "lol", "cool", "great", "nice"}},
	{Feedback, []string{"you’re helpful", "you're helpful", "good answer", "awesome", "love it"}},
}

// Classify matches text case-insensitively against the phrase table.
// Phrases match anywhere in the text, so "hi" also matches inside "which".
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, p := range r.phrases {
			if strings.Contains(lower, p) {
				return r.intent
			}
		}
	}
	return LegalQuery
}

var quickReplies = map[Intent]string{
	Greeting: "Hello! How can I assist you with any legal matters today?",
	Chitchat: "Let's stay on topic. Feel free to ask a legal question.",
	Thanks:   "You're welcome! If you need help with Indian laws, just ask.",
	Goodbye:  "Goodbye! Stay safe and legally informed.",
	Feedback: "Thanks for your kind words. I'm here to help!",
}

// DefaultReply is returned for intents without a canned answer.
const DefaultReply = "How can I assist you with your legal question?"

// QuickReply returns the canned answer for a non-legal intent.
func QuickReply(i Intent) string {
	if r, ok := quickReplies[i]; ok {
		return r
	}
	return DefaultReply
}
