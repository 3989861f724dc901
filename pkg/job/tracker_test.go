package job

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"

	"github.com/panfw/panfw/pkg/api"
)

func jobElem(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatal(err)
	}
	return doc.Root()
}

// scripted returns a QueryFunc serving the given job documents in order,
// repeating the last one, and counts calls.
func scripted(t *testing.T, count *int, docs ...string) QueryFunc {
	return func(ctx context.Context, id string) (*etree.Element, error) {
		i := *count
		*count++
		if i >= len(docs) {
			i = len(docs) - 1
		}
		return jobElem(t, docs[i]), nil
	}
}

const (
	jobPend = `<job><id>14</id><status>PEND</status></job>`
	jobAct  = `<job><id>14</id><status>ACT</status><progress>55</progress></job>`
	jobFin  = `<job><id>14</id><status>FIN</status><result>OK</result></job>`
	jobFail = `<job><id>14</id><status>FIN</status><result>FAIL</result><details><line>validation error</line></details></job>`
)

func Test_Wait_terminatesAfterExactPolls(t *testing.T) {
	polls := 0
	tr := NewTracker(0, "fw1", nil)
	r, err := tr.Wait(context.Background(), "14", 0, scripted(t, &polls, jobPend, jobPend, jobFin))
	if err != nil {
		t.Fatal(err)
	}
	if polls != 3 {
		t.Errorf("polls = %d, want 3", polls)
	}
	if !r.Success {
		t.Error("Success = false, want true")
	}
}

func Test_Wait_timeout(t *testing.T) {
	polls := 0
	tr := NewTracker(10*time.Millisecond, "fw1", nil)
	_, err := tr.Wait(context.Background(), "14", 25*time.Millisecond, scripted(t, &polls, jobPend))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if api.KindOf(err) != api.KindJobTimeout {
		t.Errorf("error kind = %s, want job-timeout", api.KindOf(err))
	}
}

func Test_Wait_deviceFailureIsResultNotError(t *testing.T) {
	polls := 0
	tr := NewTracker(0, "fw1", nil)
	r, err := tr.Wait(context.Background(), "14", 0, scripted(t, &polls, jobAct, jobFail))
	if err != nil {
		t.Fatal(err)
	}
	if r.Success {
		t.Error("Success = true, want false")
	}
	if len(r.Messages) == 0 || r.Messages[0] != "validation error" {
		t.Errorf("Messages = %v", r.Messages)
	}
}

func Test_Wait_cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	polls := 0
	tr := NewTracker(time.Second, "fw1", nil)
	_, err := tr.Wait(ctx, "14", 0, scripted(t, &polls, jobPend))
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func Test_Parse_fleet(t *testing.T) {
	doc := `<job><id>7</id><status>FIN</status><result>OK</result><devices>` +
		`<entry><serial-no>001</serial-no><devicename>edge1</devicename><status>FIN</status><result>OK</result></entry>` +
		`<entry><serial-no>002</serial-no><devicename>edge2</devicename><status>PEND</status></entry>` +
		`</devices></job>`
	r := Parse(jobElem(t, doc))
	if r.Terminal() {
		t.Error("fleet job with pending device must not be terminal")
	}
	if len(r.Devices) != 2 {
		t.Fatalf("Devices = %d, want 2", len(r.Devices))
	}
	if !r.Devices["001"].Success || r.Devices["002"].Success {
		t.Error("per-device success flags wrong")
	}
}
