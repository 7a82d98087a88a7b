package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hikam/internal/arabic"
)

func TestTablesAreNormalized(t *testing.T) {
	for head, members := range synonyms {
		assert.Equal(t, head, arabic.Normalize(head))
		for _, m := range members {
			assert.Equal(t, m, arabic.Normalize(m), "member of %q", head)
		}
	}
	for _, entry := range roots {
		for _, form := range entry.forms {
			assert.Equal(t, form, arabic.Normalize(form), "form of root %q", entry.root)
		}
	}
}

func TestFindSynonyms(t *testing.T) {
	t.Run("head lookup returns head and members", func(t *testing.T) {
		got := FindSynonyms("صبر")
		assert.Contains(t, got, "صبر")
		assert.Contains(t, got, "تحمل")
		assert.Contains(t, got, "صبور")
	})

	t.Run("lookup is symmetric", func(t *testing.T) {
		for _, head := range Heads() {
			for _, member := range synonyms[head] {
				assert.Contains(t, FindSynonyms(member), head, "%q should reach head %q", member, head)
			}
		}
	})

	t.Run("member lookup includes sibling members", func(t *testing.T) {
		got := FindSynonyms("تحمل")
		assert.Contains(t, got, "صبر")
		assert.Contains(t, got, "جلد")
	})

	t.Run("member of several heads unions all of them", func(t *testing.T) {
		got := FindSynonyms("كرب")
		assert.Contains(t, got, "حزن")
		assert.Contains(t, got, "عسر")
	})

	t.Run("input is normalized", func(t *testing.T) {
		assert.ElementsMatch(t, FindSynonyms("حكمه"), FindSynonyms("حِكْمَة"))
		assert.Contains(t, FindSynonyms("حِكْمة"), "حكيم")
	})

	t.Run("result has no duplicates", func(t *testing.T) {
		got := FindSynonyms("فرح")
		seen := map[string]bool{}
		for _, w := range got {
			assert.False(t, seen[w], "duplicate %q", w)
			seen[w] = true
		}
	})

	t.Run("unknown word yields empty", func(t *testing.T) {
		assert.Empty(t, FindSynonyms("طاولة"))
		assert.NotNil(t, FindSynonyms("طاولة"))
		assert.Empty(t, FindSynonyms(""))
	})
}

func TestFindRoots(t *testing.T) {
	t.Run("derived form maps to its root", func(t *testing.T) {
		assert.Equal(t, []string{"علم"}, FindRoots("معلم"))
		assert.Equal(t, []string{"صبر"}, FindRoots("صابر"))
	})

	t.Run("form that is itself a root", func(t *testing.T) {
		got := FindRoots("صاحب")
		assert.Equal(t, []string{"صحب"}, got)

		got = FindRoots("فرح")
		assert.Equal(t, []string{"فرح"}, got)
	})

	t.Run("fallback strips vowel letters", func(t *testing.T) {
		assert.Equal(t, []string{"سجد"}, FindRoots("ساجدون"))
	})

	t.Run("fallback needs three consonants", func(t *testing.T) {
		assert.Empty(t, FindRoots("يوم"))
	})
}

func TestRootForms(t *testing.T) {
	forms := RootForms("كتب")
	require.NotNil(t, forms)
	assert.Contains(t, forms, "كاتب")
	assert.Contains(t, forms, "مكتبه")
	assert.Nil(t, RootForms("زخرف"))
}

func TestRelatedByRoot(t *testing.T) {
	got := RelatedByRoot("كاتب")
	assert.Contains(t, got, "مكتوب")
	assert.Contains(t, got, "كتاب")

	assert.Empty(t, RelatedByRoot("ساجدون"), "fallback root is not in the table")
}

func TestRootsOrder(t *testing.T) {
	all := Roots()
	require.NotEmpty(t, all)
	assert.Equal(t, "صبر", all[0])
	assert.Equal(t, "علم", all[1])
}
