package domain

import "testing"

func TestTaskByID(t *testing.T) {
	task, ok := TaskByID(TaskBoneFracture)
	if !ok {
		t.Fatalf("bone_fracture missing from catalog")
	}
	if task.Name != "Bone Fracture Detection" || task.Prompt == "" {
		t.Fatalf("unexpected definition: %+v", task)
	}

	if _, ok := TaskByID("mind_reading"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestTasks_CatalogIsFixed(t *testing.T) {
	tasks := Tasks()
	if len(tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(tasks))
	}

	// Callers get a copy; mutating it must not touch the catalog.
	tasks[0].Name = "mutated"
	if fresh := Tasks(); fresh[0].Name == "mutated" {
		t.Fatalf("catalog leaked a mutable reference")
	}
}

func TestSession_ResetClearsConversationState(t *testing.T) {
	s := &Session{ID: "s1", Username: "alice", Role: RoleCommonUser}
	s.SelectedTask = TaskBoneAge
	s.Append(SpeakerUser, "hello")
	s.LastAnalysisContext = "report"

	s.Reset()

	if len(s.History) != 0 || s.LastAnalysisContext != "" || s.SelectedTask != "" {
		t.Fatalf("reset left conversation state behind: %+v", s)
	}
	if s.ID != "s1" || s.Username != "alice" {
		t.Fatalf("reset must not touch identity fields: %+v", s)
	}
	if s.HasContext() {
		t.Fatalf("HasContext must be false after reset")
	}
}
