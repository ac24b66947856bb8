package auth

import (
	"fmt"
	"io"
	"strings"
)

// PrintTokenGuide writes where to find the account ID and a long-lived
// access token for the Graph API
func PrintTokenGuide(w io.Writer) {
	rule := strings.Repeat("=", 72)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "INSTAGRAM GRAPH API ACCESS TOKEN")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "iggallery reads an existing token; it never logs in for you.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "1. Open your app in the Meta developer dashboard")
	fmt.Fprintln(w, "   and add the Instagram API product.")
	fmt.Fprintln(w, "2. Under API setup, generate a token for the account")
	fmt.Fprintln(w, "   with the instagram_business_basic permission.")
	fmt.Fprintln(w, "3. Note the account (user) ID shown next to the token.")
	fmt.Fprintln(w, "4. Store both:")
	fmt.Fprintln(w, "     iggallery token set <account-id>")
	fmt.Fprintln(w, "   or export IG_USER_ID and IG_ACCESS_TOKEN.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Long-lived tokens expire after about 60 days. An expired token")
	fmt.Fprintln(w, "shows up as an auth error from 'iggallery update'.")
	fmt.Fprintln(w, rule)
}
