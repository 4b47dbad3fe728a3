package metar

import (
	"regexp"
	"strings"
)

// Grammars for the whitespace-separated groups of the encoded report.
var (
	cloudRe = regexp.MustCompile(`^(CAVOK|CLR|SKC|BKN|SCT|FEW|OVC|NSC)([0-9]{3})?` +
		`(TCU|CU|CB|SC|CBMAM|ACC|SCSL|CCSL|ACSL)?$`)
	condRe = regexp.MustCompile(`^[-+]?(VC|MI|BC|PR|TS|BL|SH|DR|FZ)?(DZ|RA|SN|SG|IC|PE|` +
		`GR|GS|UP|BR|FG|FU|VA|SA|HZ|PY|DU|SQ|SS|DS|PO|\+?FC)$`)
)

// ConditionInfo pairs a human-readable description with a suggested
// icon name for UI purposes.
type ConditionInfo struct {
	Text string `json:"text"`
	Icon string `json:"icon,omitempty"`
}

// matchCodeGroups returns the whitespace-separated groups of an encoded
// METAR report that match the given grammar, in report order.
func matchCodeGroups(code string, re *regexp.Regexp) []string {
	var matches []string
	for _, group := range strings.Fields(code) {
		if re.MatchString(group) {
			matches = append(matches, group)
		}
	}
	return matches
}

// extractCloudInformation scans the encoded report for cloud groups and
// returns the sky coverage description, the cloud type name (if a group
// carries a recognised type suffix) and a suggested icon. Later groups
// with a different coverage overwrite earlier ones; the cloud type is
// taken from the first group that has one.
func extractCloudInformation(code string) (skyType, cloudType, icon string) {
	for _, group := range matchCodeGroups(code, cloudRe) {
		switch group[:3] {
		case "CLR", "SKC", "CAV", "NSC":
			skyType, icon = "Clear sky", "sun"
		case "BKN":
			skyType, icon = "Broken clouds", "suncloud"
		case "SCT":
			skyType, icon = "Scattered clouds", "suncloud"
		case "FEW":
			skyType, icon = "Few clouds", "suncloud"
		case "OVC":
			skyType, icon = "Overcast", "cloud"
		}
		if cloudType == "" && len(group) > 6 {
			cloudType = cloudTypes[group[6:]]
		}
	}
	return skyType, cloudType, icon
}

// extractSkyConditions scans the encoded report for weather phenomenon
// groups and resolves the first match through the phenomenon table.
// Reports can carry several phenomena at once; only the first group is
// considered.
func extractSkyConditions(code string) *ConditionInfo {
	for _, group := range matchCodeGroups(code, condRe) {
		if len(group) > 3 && (group[0] == '+' || group[0] == '-') {
			group = group[1:]
		}

		// Qualifier length: one for a bare intensity sign, zero when
		// the remaining code is too short to carry a two-letter
		// qualifier, two otherwise.
		var qlen int
		switch {
		case group[0] == '+' || group[0] == '-':
			qlen = 1
		case len(group) < 4:
			qlen = 0
		default:
			qlen = 2
		}

		qualifier := group[:qlen]
		phenCode := group[qlen:]
		if len(phenCode) > 4 {
			phenCode = phenCode[:4]
		}

		ph, ok := weatherConditions[phenCode]
		if !ok {
			continue
		}
		v, ok := ph.variants[qualifier]
		if !ok {
			return &ConditionInfo{Text: ph.name, Icon: ph.icon}
		}
		if v.icon != "" {
			// Storm variant with its own icon.
			return &ConditionInfo{Text: v.text, Icon: v.icon}
		}
		return &ConditionInfo{Text: v.text, Icon: ph.icon}
	}
	return nil
}
