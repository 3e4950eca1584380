package service

import "testing"

func TestClassifyChat_GreetingIsExactMatchOnly(t *testing.T) {
	rule, ok := classifyChat("  Good Morning ")
	if !ok || rule.name != "greeting" {
		t.Fatalf("expected greeting match, got %+v ok=%v", rule, ok)
	}

	// A greeting embedded in a longer message is not a greeting turn.
	if rule, ok := classifyChat("hello, can you explain the report?"); ok {
		t.Fatalf("embedded greeting must not match, got %q", rule.name)
	}
}

func TestClassifyChat_AppreciationBeatsIrrelevant(t *testing.T) {
	// Contains both an appreciation token and an off-topic token; the table
	// is order-sensitive, so appreciation wins.
	rule, ok := classifyChat("thanks for the sports update")
	if !ok || rule.name != "appreciation" {
		t.Fatalf("expected appreciation, got %+v ok=%v", rule, ok)
	}
}

func TestClassifyChat_IrrelevantSubstrings(t *testing.T) {
	cases := []string{
		"who is the president",
		"what is the capital of france",
		"how is the weather today",
		// "pm" matches as a raw substring, by design.
		"my appointment is at 5pm",
	}
	for _, msg := range cases {
		rule, ok := classifyChat(msg)
		if !ok || rule.name != "irrelevant" {
			t.Fatalf("expected irrelevant for %q, got %+v ok=%v", msg, rule, ok)
		}
	}
}

func TestClassifyChat_MedicalQuestionFallsThrough(t *testing.T) {
	if rule, ok := classifyChat("is a hairline fracture serious?"); ok {
		t.Fatalf("medical question must fall through to follow-up, got %q", rule.name)
	}
}
