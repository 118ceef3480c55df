// Package dataset normalizes, sorts and summarizes the records drawn by the
// chart.
//
// # Records
//
// Input arrives as [Raw] pairs whose key and value may be of any type (for
// example straight out of a JSON decoder). [Clean] coerces every key to text,
// checks that every value is numeric and rejects duplicate keys, since the
// key is the sole identity used to reconcile rendered bars across updates.
//
// # Sorting
//
// [Sort] orders records in place, either by key using a locale-aware
// collator or by value. The sort is stable and descending order reverses the
// comparator, so records that compare equal keep their prior relative order.
// [SortState] also implements the click-to-resort cycle:
//
//	(true,true) → (false,true) → (true,false) → (false,false) → (true,true)
//
// # Snapshots
//
// A [Dataset] is an immutable snapshot holding sorted records, their labels
// (the band-scale domain) and the magnitude extremum used by the horizontal
// scales:
//
//	recs, err := dataset.Clean(raw)
//	if err != nil {
//	    return err
//	}
//	ds := dataset.New(recs, dataset.DefaultSort, 0, dataset.DefaultDataMax, nil)
//	fmt.Println(ds.Labels, ds.DataMax)
package dataset
