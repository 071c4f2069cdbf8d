package bpmn

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/vine-io/pkg/xname"
)

// script language names and the URIs used for scriptFormat and language
// attributes.
var languages = [][2]string{
	{"java", "http://www.java.com/java"},
	{"mvel", "http://www.mvel.org/2.0"},
	{"javascript", "http://www.javascript.com/javascript"},
	{"drools", "http://www.jboss.org/drools/rule"},
	{"feel", "http://www.omg.org/spec/FEEL/20140401"},
}

// LanguageURI returns the URI of a script language. Unknown names are
// returned unchanged.
func LanguageURI(language string) string {
	for _, item := range languages {
		if strings.EqualFold(item[0], language) {
			return item[1]
		}
	}
	return language
}

// LanguageName returns the script language of a URI. Unknown URIs are
// returned unchanged.
func LanguageName(uri string) string {
	for _, item := range languages {
		if item[1] == uri {
			return item[0]
		}
	}
	return uri
}

// getAttr finds an attribute by its local key, whatever prefix the
// document bound to its namespace.
func getAttr(attrs []etree.Attr, key string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func attrString(e *etree.Element, key string) string {
	v, _ := getAttr(e.Attr, key)
	return v
}

func attrBool(e *etree.Element, key string, def bool) bool {
	v, ok := getAttr(e.Attr, key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func attrFloat(e *etree.Element, key string) float64 {
	v, _ := getAttr(e.Attr, key)
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

func getKind(v any) string {
	typ := reflect.TypeOf(v)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ.Name()
}

func randName() string {
	return xname.Gen(xname.C(7), xname.Lowercase(), xname.Digit())
}
