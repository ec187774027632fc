package langdb

import (
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"src.maxlang.sh/pkg/lang"
)

// recordVersion is bumped when the record layout changes; records of other
// versions are treated as misses.
const recordVersion = 1

type stamp struct {
	size  int64
	mtime int64
}

func stampOf(info os.FileInfo) stamp {
	return stamp{info.Size(), info.ModTime().UnixNano()}
}

// encodeRecord encodes a store as
// {"version":1,"size":N,"mtime":N,"entries":[{"key":...,"text":...},...]}.
func encodeRecord(st stamp, store *lang.Store) []byte {
	rec := []byte(`{"entries":[]}`)
	rec, _ = sjson.SetBytes(rec, "version", recordVersion)
	rec, _ = sjson.SetBytes(rec, "size", st.size)
	rec, _ = sjson.SetBytes(rec, "mtime", st.mtime)
	for _, key := range store.Keys() {
		e, _ := store.Lookup(key)
		entry := []byte(`{}`)
		entry, _ = sjson.SetBytes(entry, "key", key)
		entry, _ = sjson.SetBytes(entry, "text", e.Text)
		if e.HasRIP {
			entry, _ = sjson.SetBytes(entry, "rip", e.RIP)
		}
		if len(e.Flags) > 0 {
			entry, _ = sjson.SetBytes(entry, "flags", e.Flags)
		}
		rec, _ = sjson.SetRawBytes(rec, "entries.-1", entry)
	}
	return rec
}

// decodeRecord returns the entries of a record, or nil if the record is
// stale or malformed.
func decodeRecord(rec []byte, st stamp) map[string]lang.Entry {
	if !gjson.ValidBytes(rec) {
		return nil
	}
	r := gjson.ParseBytes(rec)
	if r.Get("version").Int() != recordVersion ||
		r.Get("size").Int() != st.size || r.Get("mtime").Int() != st.mtime {
		return nil
	}
	entries := make(map[string]lang.Entry)
	r.Get("entries").ForEach(func(_, v gjson.Result) bool {
		e := lang.Entry{Text: v.Get("text").String()}
		if rip := v.Get("rip"); rip.Exists() {
			e.RIP, e.HasRIP = rip.String(), true
		}
		for _, f := range v.Get("flags").Array() {
			e.Flags = append(e.Flags, f.String())
		}
		entries[v.Get("key").String()] = e
		return true
	})
	return entries
}
