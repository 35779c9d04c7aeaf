package model

import (
	"errors"
	"testing"
)

func TestTaskListAddAppendsAndNotifies(t *testing.T) {
	list := NewTaskList()
	notified := 0
	list.Subscribe(func() { notified++ })

	first := list.Add("", false)
	second := list.Add("write report", true)

	if notified != 2 {
		t.Fatalf("expected 2 notifications, got %d", notified)
	}
	tasks := list.Tasks()
	if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("unexpected task order: %#v", tasks)
	}
	if tasks[0].Text != "" || tasks[0].Checked {
		t.Fatalf("expected empty unchecked default task, got %#v", tasks[0])
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %q and %q", first.ID, second.ID)
	}
}

func TestTaskListDeleteUnknownIsSilent(t *testing.T) {
	list := NewTaskList()
	list.Add("keep", false)
	notified := 0
	list.Subscribe(func() { notified++ })

	if list.Delete("missing") {
		t.Fatal("expected delete of unknown id to report false")
	}
	if notified != 0 {
		t.Fatalf("expected no notification, got %d", notified)
	}
	if list.Len() != 1 {
		t.Fatalf("expected list unchanged, got %d tasks", list.Len())
	}
}

func TestTaskListMutationsNotifyEveryCall(t *testing.T) {
	list := NewTaskList()
	task := list.Add("a", false)
	notified := 0
	list.Subscribe(func() { notified++ })

	list.SetText(task.ID, "ab")
	list.SetText(task.ID, "ab")
	list.SetChecked(task.ID, true)
	if notified != 3 {
		t.Fatalf("expected 3 notifications, got %d", notified)
	}

	got, err := list.Get(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Text != "ab" || !got.Checked {
		t.Fatalf("unexpected task after mutation: %#v", got)
	}

	if !list.Delete(task.ID) {
		t.Fatal("expected delete to succeed")
	}
	if _, err := list.Get(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if notified != 4 {
		t.Fatalf("expected 4 notifications, got %d", notified)
	}
}

func TestTaskListRestoreDoesNotNotify(t *testing.T) {
	list := NewTaskList()
	notified := 0
	list.Subscribe(func() { notified++ })

	list.Restore([]Task{{Text: "one"}, {Text: "two", Checked: true}})
	if notified != 0 {
		t.Fatalf("expected restore to be silent, got %d notifications", notified)
	}
	tasks := list.Tasks()
	if len(tasks) != 2 || tasks[1].Text != "two" || !tasks[1].Checked {
		t.Fatalf("unexpected restored tasks: %#v", tasks)
	}
	if tasks[0].ID == "" {
		t.Fatal("expected restored task to receive an id")
	}
}

func TestTaskListTasksReturnsCopy(t *testing.T) {
	list := NewTaskList()
	list.Add("original", false)
	tasks := list.Tasks()
	tasks[0].Text = "mutated"
	if list.Tasks()[0].Text != "original" {
		t.Fatal("expected Tasks to return a copy")
	}
}
