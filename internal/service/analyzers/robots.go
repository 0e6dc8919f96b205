package analyzers

import "regexp"

// AICrawlers is the fixed roster of named AI crawler agents checked against
// the robots policy, in report order.
var AICrawlers = []string{
	"GPTBot", "ChatGPT-User", "ClaudeBot", "PerplexityBot",
	"Google-Extended", "Amazonbot", "Meta-ExternalAgent",
	"Bytespider", "Applebot-Extended",
}

// keyAICrawlers are the agents whose blocking costs score on its own.
var keyAICrawlers = map[string]bool{
	"GPTBot":        true,
	"ClaudeBot":     true,
	"PerplexityBot": true,
}

var wildcardBlockRe = regexp.MustCompile(`(?m)User-agent:\s*\*\s*\n\s*Disallow:\s*/\s*$`)

var crawlerBlockRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(AICrawlers))
	for _, c := range AICrawlers {
		res[c] = regexp.MustCompile(`(?ims)User-agent:\s*` + regexp.QuoteMeta(c) + `.*?Disallow:\s*/\s*$`)
	}
	return res
}()

// robotsBlocksAll reports whether the policy disallows every agent via a
// wildcard rule.
func robotsBlocksAll(robotsTxt string) bool {
	if robotsTxt == "" {
		return false
	}
	return wildcardBlockRe.MatchString(robotsTxt)
}

// robotsBlocksCrawler reports whether the policy has a crawler-specific
// disallow-all rule. The wildcard rule is handled separately and takes
// precedence when building crawler status.
func robotsBlocksCrawler(robotsTxt, crawler string) bool {
	if robotsTxt == "" {
		return false
	}
	re, ok := crawlerBlockRes[crawler]
	if !ok {
		return false
	}
	return re.MatchString(robotsTxt)
}

// crawlerAccessStatus resolves allow/block per roster crawler. A wildcard
// disallow marks every crawler blocked regardless of per-agent rules.
func crawlerAccessStatus(robotsTxt string) map[string]string {
	status := make(map[string]string, len(AICrawlers))
	all := robotsBlocksAll(robotsTxt)
	for _, c := range AICrawlers {
		if all || robotsBlocksCrawler(robotsTxt, c) {
			status[c] = "blocked"
		} else {
			status[c] = "allowed"
		}
	}
	return status
}
