package admission_test

import (
	"fmt"
	"time"

	"github.com/saurabh-xd/kana-dojo/admission"
)

func ExampleController_Check() {
	ctrl := admission.New(admission.Config{
		PerClientLimit: 2, PerClientWindow: time.Minute,
		GlobalLimit: 100, GlobalWindow: time.Minute,
		DailyLimit: 1000, DailyWindow: 24 * time.Hour,
	})

	for i := 0; i < 3; i++ {
		d := ctrl.Check("client-a")
		if d.Allowed {
			fmt.Println("allowed, remaining:", d.Remaining)
		} else {
			fmt.Println("denied by:", d.Tier)
		}
	}
	// Output:
	// allowed, remaining: 1
	// allowed, remaining: 0
	// denied by: per_client
}
