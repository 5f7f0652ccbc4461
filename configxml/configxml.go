// Package configxml reads and edits a Cordova config.xml.
//
// Values are read with an XML parser, but edits are textual substitutions inside the
// widget start tag, so every byte outside the rewritten attribute is preserved.
package configxml

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/bitrise-io/go-utils/v2/fileutil"
)

// FileName is the manifest name Cordova expects at the project root.
const FileName = "config.xml"

const (
	// AndroidVersionCodeAttr holds the android build number.
	AndroidVersionCodeAttr = "android-versionCode"
	// IOSBundleVersionAttr holds the ios build number.
	IOSBundleVersionAttr = "ios-CFBundleVersion"
)

var (
	widgetStartTagRegexp = regexp.MustCompile(`<widget\b[^>]*>`)
	versionAttrRegexp    = regexp.MustCompile(`\sversion="[0-9.]*"`)
)

// Manifest ...
type Manifest struct {
	path    string
	perm    os.FileMode
	content string
	widget  *etree.Element
}

// Read parses the manifest at pth.
func Read(fileManager fileutil.FileManager, pth string) (*Manifest, error) {
	info, err := os.Stat(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pth, err)
	}

	f, err := fileManager.Open(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", pth, err)
	}
	defer func() {
		_ = f.Close()
	}()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pth, err)
	}

	m := &Manifest{path: pth, perm: info.Mode().Perm()}
	if err := m.setContent(string(b)); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse parses manifest content that is not backed by a file.
func Parse(content string) (*Manifest, error) {
	m := &Manifest{perm: 0644}
	if err := m.setContent(content); err != nil {
		return nil, err
	}
	return m, nil
}

// Path ...
func (m *Manifest) Path() string {
	return m.path
}

// Content returns the current, possibly edited, manifest text.
func (m *Manifest) Content() string {
	return m.content
}

// AppName returns the text of widget/name.
func (m *Manifest) AppName() (string, error) {
	name := m.widget.SelectElement("name")
	if name == nil {
		return "", fmt.Errorf("%s has no widget/name element", m.displayName())
	}
	appName := strings.TrimSpace(name.Text())
	if appName == "" {
		return "", fmt.Errorf("%s has an empty widget/name element", m.displayName())
	}
	return appName, nil
}

// Version returns widget@version, empty if not set.
func (m *Manifest) Version() string {
	return m.widget.SelectAttrValue("version", "")
}

// ID returns widget@id, the app identifier.
func (m *Manifest) ID() string {
	return m.widget.SelectAttrValue("id", "")
}

// Attr ...
func (m *Manifest) Attr(key string) (string, bool) {
	attr := m.widget.SelectAttr(key)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// SetVersion rewrites the first version="<digits and dots>" attribute of the widget element.
func (m *Manifest) SetVersion(version string) error {
	tag, start, end := m.widgetStartTag()
	loc := versionAttrRegexp.FindStringIndex(tag)
	if loc == nil {
		return fmt.Errorf("%s has no numeric version attribute on the widget element", m.displayName())
	}

	// keep the leading whitespace
	newTag := tag[:loc[0]+1] + fmt.Sprintf(`version="%s"`, version) + tag[loc[1]:]
	return m.setContent(m.content[:start] + newTag + m.content[end:])
}

// SetAttr rewrites the widget attribute key, or inserts it after the version attribute if missing.
func (m *Manifest) SetAttr(key, value string) error {
	tag, start, end := m.widgetStartTag()
	attr := fmt.Sprintf(`%s="%s"`, key, value)

	var newTag string
	if loc := regexp.MustCompile(`\s` + regexp.QuoteMeta(key) + `="[^"]*"`).FindStringIndex(tag); loc != nil {
		newTag = tag[:loc[0]+1] + attr + tag[loc[1]:]
	} else if loc := versionAttrRegexp.FindStringIndex(tag); loc != nil {
		newTag = tag[:loc[1]] + " " + attr + tag[loc[1]:]
	} else {
		closing := len(tag) - 1
		if strings.HasSuffix(tag, "/>") {
			closing--
		}
		newTag = strings.TrimRight(tag[:closing], " \t\r\n") + " " + attr + tag[closing:]
	}

	return m.setContent(m.content[:start] + newTag + m.content[end:])
}

// Save writes the manifest back to the file it was read from.
func (m *Manifest) Save(fileManager fileutil.FileManager) error {
	if m.path == "" {
		return fmt.Errorf("manifest was not read from a file")
	}
	if err := fileManager.Write(m.path, m.content, m.perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}
	return nil
}

func (m *Manifest) setContent(content string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.displayName(), err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "widget" {
		return fmt.Errorf("%s has no root widget element", m.displayName())
	}
	if widgetStartTagRegexp.FindStringIndex(content) == nil {
		return fmt.Errorf("%s has no widget start tag", m.displayName())
	}

	m.content = content
	m.widget = root
	return nil
}

func (m *Manifest) widgetStartTag() (string, int, int) {
	loc := widgetStartTagRegexp.FindStringIndex(m.content)
	return m.content[loc[0]:loc[1]], loc[0], loc[1]
}

func (m *Manifest) displayName() string {
	if m.path == "" {
		return FileName
	}
	return m.path
}
