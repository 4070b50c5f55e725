package integrations_test

import (
	"fmt"
	"net/url"

	"github.com/matzehuels/photogrid/pkg/integrations"
)

func ExampleJoinURL() {
	q := url.Values{"mode": {"d"}, "tag": {"beach"}}
	fmt.Println(integrations.JoinURL("https://photos.example.com/", "/servlet/browserest", q))
	// Output:
	// https://photos.example.com/servlet/browserest?mode=d&tag=beach
}
