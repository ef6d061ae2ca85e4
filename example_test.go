package scormkit_test

import (
	"context"
	"fmt"

	"github.com/aretw0/scormkit"
	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/domain"
)

// ExampleNew runs a short learner session inside a frame of an LMS window.
func ExampleNew() {
	ctx := context.Background()

	lms := memory.NewLMS(domain.SCORM12, memory.WithLearner("Ada Lovelace", "ada"))
	top := memory.NewWindow("lms").Publish(domain.SCORM12.Binding, lms)
	client := scormkit.New(top.Child("content"), memory.NewStore())

	res := client.Connect()
	fmt.Println(res.Success, res.Version, client.StudentName())

	_ = client.SetLocation(ctx, 3, map[string]any{"page": 3})
	client.SetScore(80)
	client.SetComplete()
	client.Terminate()

	status, _ := lms.Committed("cmi.core.lesson_status")
	score, _ := lms.Committed("cmi.core.score.raw")
	fmt.Println(status, score)
	// Output:
	// true 1.2 Ada Lovelace
	// completed 80
}

// ExampleNew_standalone shows writes degrading to fallback storage without an LMS.
func ExampleNew_standalone() {
	ctx := context.Background()

	store := memory.NewStore()
	client := scormkit.New(memory.NewWindow("preview"), store)

	_ = client.SetLocation(ctx, 7, nil)

	bookmark, _ := store.GetItem(ctx, domain.KeyBookmark)
	fmt.Println(client.Connected(), bookmark, client.StudentName())
	// Output:
	// false 7 John Doe
}
