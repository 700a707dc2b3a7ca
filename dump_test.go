package wiktionary

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.11/" version="0.11" xml:lang="en">
  <siteinfo>
    <sitename>Wiktionary</sitename>
    <base>https://en.wiktionary.org/wiki/Wiktionary:Main_Page</base>
    <generator>MediaWiki 1.42.0</generator>
    <case>case-sensitive</case>
    <namespaces>
      <namespace key="0" case="case-sensitive" />
      <namespace key="10" case="case-sensitive">Template</namespace>
    </namespaces>
  </siteinfo>
  <page>
    <title>avoir</title>
    <ns>0</ns>
    <id>10</id>
    <revision>
      <id>900</id>
      <timestamp>2024-01-02T03:04:05Z</timestamp>
      <contributor>
        <username>Someone</username>
        <id>77</id>
      </contributor>
      <text bytes="120" xml:space="preserve">==French==
===Verb===
# to [[have]]

===Noun===
# [[asset]]</text>
    </revision>
  </page>
  <page>
    <title>Template:fr-conj</title>
    <ns>10</ns>
    <id>11</id>
    <revision>
      <id>901</id>
      <text bytes="3" xml:space="preserve">...</text>
    </revision>
  </page>
  <page>
    <title>fait &amp; faire</title>
    <ns>0</ns>
    <id>12</id>
    <revision>
      <id>902</id>
      <text bytes="0" xml:space="preserve" />
    </revision>
  </page>
</mediawiki>
`

func TestParserPages(t *testing.T) {
	p, err := NewParser(strings.NewReader(testDump))
	require.NoError(t, err)
	assert.Equal(t, "Wiktionary", p.SiteInfo().SiteName)
	assert.Len(t, p.SiteInfo().Namespaces, 2)

	first, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "avoir", first.Title)
	assert.True(t, first.IsEntry())
	assert.Equal(t, uint64(900), first.Revisions[0].ID)
	assert.Equal(t, "Someone", first.Revisions[0].Contributor.Username)
	assert.Contains(t, first.Text(), "===Noun===")

	second, err := p.Next()
	require.NoError(t, err)
	assert.False(t, second.IsEntry())

	third, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "fait & faire", third.Title)
	assert.Equal(t, "", third.Text())

	_, err = p.Next()
	assert.Equal(t, io.EOF, err)
}

func TestParserEntriesFromPage(t *testing.T) {
	p, err := NewParser(strings.NewReader(testDump))
	require.NoError(t, err)
	page, err := p.Next()
	require.NoError(t, err)

	entries := NewEntryParser().ParsePage(page.Title, page.Text(), IsSupportedLanguage)
	require.Len(t, entries, 2)
	assert.Equal(t, "verb", entries[0].PartOfSpeech)
	assert.Equal(t, "noun", entries[1].PartOfSpeech)
}

func TestOpenDump(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "dump.xml")
	require.NoError(t, os.WriteFile(fn, []byte(testDump), 0o644))

	p, closer, err := OpenDump(fn)
	require.NoError(t, err)
	defer closer.Close()

	page, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "avoir", page.Title)
}

func TestOpenDumpMissing(t *testing.T) {
	_, _, err := OpenDump(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}
