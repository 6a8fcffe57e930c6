package lint

import "regexp"

// riskPatterns flag text that looks like an injection attempt. Only the
// first match is reported.
var riskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i);\s*(DROP|DELETE|TRUNCATE|UPDATE)\b`),
	regexp.MustCompile(`(?i)\bxp_`),
	regexp.MustCompile(`(?i)\bsp_`),
	regexp.MustCompile(`(?i)\bEXEC(UTE)?\b`),
	regexp.MustCompile(`--[^\n]*;`),
	regexp.MustCompile(`(?s)/\*.*\*/`),
}

const riskMessage = "Query contains potentially dangerous patterns. Please review carefully."

// matchRisk returns the first risk pattern matching sql, or nil.
func matchRisk(sql string) *regexp.Regexp {
	for _, re := range riskPatterns {
		if re.MatchString(sql) {
			return re
		}
	}
	return nil
}
