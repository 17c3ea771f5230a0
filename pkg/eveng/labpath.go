package eveng

import "strings"

// labsPrefix is where EVE-NG stores lab files on the server.
const labsPrefix = "/opt/unetlab/labs/"

// APIPath converts a lab path to the form the REST API expects:
// no /opt/unetlab/labs/ prefix and no .unl extension.
func APIPath(lab string) string {
	lab = strings.TrimPrefix(lab, labsPrefix)
	lab = strings.TrimSuffix(lab, ".unl")
	return lab
}

// FullPath converts a lab path to the absolute on-server form the
// unl_wrapper -F argument expects. Relative paths get the labs prefix;
// the .unl extension is added when missing.
func FullPath(lab string) string {
	if !strings.HasPrefix(lab, labsPrefix) {
		lab = labsPrefix + strings.TrimPrefix(lab, "/")
	}
	if !strings.HasSuffix(lab, ".unl") {
		lab += ".unl"
	}
	return lab
}
