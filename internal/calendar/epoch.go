package calendar

// Era selects which phase ladder applies to a lunar year.
type Era int

// EpochRecord is the lunar-year anchor for one Buddhist Era year: the ladder
// to use and the day offset of 1 January within that lunar year.
type EpochRecord struct {
	BEYear     int
	Era        Era
	BaseOffset int
}

const (
	// BEOffset converts a Common Era year to the Buddhist Era.
	BEOffset = 543

	// ReformYear is the first BE year that starts on 1 January.
	// Earlier years started in April.
	ReformYear = 2484

	// FirstSupportedYear and LastSupportedYear bound both epoch tables.
	FirstSupportedYear = 2300
	LastSupportedYear  = 2620
)

// LookupEpoch returns the epoch record for a Buddhist Era year from
// whichever table covers it.
func LookupEpoch(beYear int) (EpochRecord, error) {
	if beYear >= ReformYear {
		return lookupIn(reformEpochs, beYear)
	}
	return lookupIn(preReformEpochs, beYear)
}

// lookupIn indexes a table directly by year. Both tables hold exactly one
// record per year with no gaps.
func lookupIn(table []EpochRecord, beYear int) (EpochRecord, error) {
	if len(table) == 0 {
		return EpochRecord{}, &RangeError{BEYear: beYear}
	}
	i := beYear - table[0].BEYear
	if i < 0 || i >= len(table) {
		return EpochRecord{}, &RangeError{BEYear: beYear}
	}
	return table[i], nil
}

// preReformEpochs covers BE 2300-2483 (CE 1757-1940).
var preReformEpochs = []EpochRecord{
	{2300, 3, 0}, {2301, 1, 52}, {2302, 2, 33}, {2303, 1, 43},
	{2304, 3, 25}, {2305, 3, 36}, {2306, 1, 47}, {2307, 2, 28},
	{2308, 3, 39}, {2309, 1, 50}, {2310, 2, 31}, {2311, 1, 41},
	{2312, 3, 23}, {2313, 3, 34}, {2314, 1, 45}, {2315, 3, 26},
	{2316, 2, 38}, {2317, 1, 48}, {2318, 3, 29}, {2319, 3, 40},
	{2320, 1, 52}, {2321, 2, 33}, {2322, 1, 43}, {2323, 3, 24},
	{2324, 3, 36}, {2325, 1, 47}, {2326, 3, 28}, {2327, 2, 39},
	{2328, 1, 50}, {2329, 3, 31}, {2330, 1, 42}, {2331, 3, 23},
	{2332, 2, 35}, {2333, 1, 45}, {2334, 3, 26}, {2335, 3, 37},
	{2336, 1, 49}, {2337, 2, 30}, {2338, 3, 40}, {2339, 1, 51},
	{2340, 3, 33}, {2341, 1, 44}, {2342, 2, 25}, {2343, 3, 35},
	{2344, 1, 46}, {2345, 3, 27}, {2346, 2, 38}, {2347, 1, 48},
	{2348, 3, 30}, {2349, 1, 41}, {2350, 3, 22}, {2351, 3, 33},
	{2352, 1, 45}, {2353, 2, 26}, {2354, 3, 36}, {2355, 1, 47},
	{2356, 3, 29}, {2357, 2, 40}, {2358, 1, 50}, {2359, 3, 31},
	{2360, 1, 43}, {2361, 3, 24}, {2362, 2, 35}, {2363, 1, 45},
	{2364, 3, 27}, {2365, 3, 38}, {2366, 1, 49}, {2367, 3, 30},
	{2368, 1, 42}, {2369, 2, 23}, {2370, 3, 33}, {2371, 1, 44},
	{2372, 3, 26}, {2373, 2, 37}, {2374, 1, 47}, {2375, 3, 28},
	{2376, 3, 40}, {2377, 1, 51}, {2378, 2, 32}, {2379, 1, 42},
	{2380, 3, 24}, {2381, 2, 35}, {2382, 1, 45}, {2383, 3, 26},
	{2384, 3, 38}, {2385, 1, 49}, {2386, 3, 30}, {2387, 1, 41},
	{2388, 3, 23}, {2389, 2, 34}, {2390, 1, 44}, {2391, 3, 25},
	{2392, 2, 37}, {2393, 1, 47}, {2394, 3, 28}, {2395, 3, 39},
	{2396, 1, 51}, {2397, 2, 32}, {2398, 1, 42}, {2399, 3, 35},
	{2400, 3, 35}, {2401, 1, 46}, {2402, 3, 27}, {2403, 2, 38},
	{2404, 1, 49}, {2405, 3, 30}, {2406, 1, 41}, {2407, 3, 22},
	{2408, 2, 34}, {2409, 1, 44}, {2410, 3, 25}, {2411, 3, 36},
	{2412, 1, 48}, {2413, 3, 29}, {2414, 2, 40}, {2415, 1, 50},
	{2416, 3, 32}, {2417, 1, 43}, {2418, 3, 24}, {2419, 2, 35},
	{2420, 1, 46}, {2421, 3, 27}, {2422, 3, 38}, {2423, 1, 49},
	{2424, 2, 31}, {2425, 1, 41}, {2426, 3, 22}, {2427, 3, 33},
	{2428, 1, 45}, {2429, 3, 26}, {2430, 2, 37}, {2431, 1, 47},
	{2432, 3, 29}, {2433, 1, 40}, {2434, 3, 21}, {2435, 2, 32},
	{2436, 1, 43}, {2437, 3, 24}, {2438, 3, 35}, {2439, 1, 46},
	{2440, 3, 28}, {2441, 2, 39}, {2442, 1, 49}, {2443, 3, 30},
	{2444, 1, 41}, {2445, 3, 22}, {2446, 2, 33}, {2447, 1, 43},
	{2448, 3, 25}, {2449, 3, 36}, {2450, 1, 47}, {2451, 2, 28},
	{2452, 1, 39}, {2453, 3, 20}, {2454, 3, 31}, {2455, 1, 42},
	{2456, 3, 24}, {2457, 2, 35}, {2458, 1, 45}, {2459, 3, 26},
	{2460, 2, 38}, {2461, 1, 48}, {2462, 3, 29}, {2463, 1, 40},
	{2464, 3, 22}, {2465, 3, 33}, {2466, 1, 44}, {2467, 3, 25},
	{2468, 2, 37}, {2469, 1, 47}, {2470, 3, 28}, {2471, 1, 39},
	{2472, 2, 21}, {2473, 3, 31}, {2474, 1, 42}, {2475, 3, 23},
	{2476, 2, 35}, {2477, 1, 45}, {2478, 3, 26}, {2479, 2, 37},
	{2480, 1, 48}, {2481, 3, 29}, {2482, 1, 40}, {2483, 3, 21},
}

// reformEpochs covers BE 2484-2620 (CE 1941-2077).
var reformEpochs = []EpochRecord{
	{2484, 3, 33}, {2485, 1, 44}, {2486, 3, 25}, {2487, 1, 36},
	{2488, 2, 18}, {2489, 3, 28}, {2490, 1, 39}, {2491, 3, 20},
	{2492, 2, 32}, {2493, 1, 42}, {2494, 3, 23}, {2495, 2, 34},
	{2496, 1, 45}, {2497, 3, 26}, {2498, 3, 37}, {2499, 1, 48},
	{2500, 2, 30}, {2501, 1, 40}, {2502, 3, 21}, {2503, 3, 32},
	{2504, 1, 44}, {2505, 3, 25}, {2506, 2, 36}, {2507, 1, 46},
	{2508, 3, 28}, {2509, 1, 39}, {2510, 3, 20}, {2511, 3, 31},
	{2512, 1, 43}, {2513, 2, 24}, {2514, 3, 34}, {2515, 1, 45},
	{2516, 2, 27}, {2517, 3, 37}, {2518, 1, 48}, {2519, 3, 29},
	{2520, 1, 41}, {2521, 3, 22}, {2522, 2, 33}, {2523, 1, 43},
	{2524, 3, 25}, {2525, 3, 36}, {2526, 1, 47}, {2527, 3, 28},
	{2528, 1, 40}, {2529, 3, 21}, {2530, 2, 32}, {2531, 1, 42},
	{2532, 3, 24}, {2533, 2, 35}, {2534, 1, 45}, {2535, 3, 26},
	{2536, 1, 38}, {2537, 3, 19}, {2538, 3, 30}, {2539, 1, 41},
	{2540, 2, 23}, {2541, 3, 33}, {2542, 1, 44}, {2543, 2, 25},
	{2544, 3, 36}, {2545, 1, 47}, {2546, 3, 28}, {2547, 1, 39},
	{2548, 2, 21}, {2549, 3, 32}, {2550, 1, 42}, {2551, 3, 23},
	{2552, 2, 35}, {2553, 1, 45}, {2554, 3, 26}, {2555, 1, 37},
	{2556, 3, 19}, {2557, 3, 30}, {2558, 1, 41}, {2559, 2, 22},
	{2560, 3, 33}, {2561, 1, 44}, {2562, 3, 25}, {2563, 3, 36},
	{2564, 1, 48}, {2565, 3, 29}, {2566, 1, 40}, {2567, 3, 21},
	{2568, 2, 32}, {2569, 1, 42}, {2570, 3, 23}, {2571, 3, 34},
	{2572, 1, 56}, {2573, 3, 27}, {2574, 1, 38}, {2575, 2, 19},
	{2576, 3, 31}, {2577, 1, 41}, {2578, 2, 22}, {2579, 3, 32},
	{2580, 1, 44}, {2581, 3, 25}, {2582, 3, 36}, {2583, 1, 47},
	{2584, 3, 29}, {2585, 1, 40}, {2586, 2, 21}, {2587, 3, 31},
	{2588, 1, 43}, {2589, 2, 24}, {2590, 3, 34}, {2591, 1, 45},
	{2592, 3, 27}, {2593, 1, 38}, {2594, 3, 19}, {2595, 2, 30},
	{2596, 1, 41}, {2597, 3, 22}, {2598, 3, 33}, {2599, 1, 44},
	{2600, 3, 26}, {2601, 2, 37}, {2602, 1, 47}, {2603, 3, 28},
	{2604, 1, 40}, {2605, 2, 21}, {2606, 3, 31}, {2607, 1, 42},
	{2608, 3, 24}, {2609, 3, 35}, {2610, 1, 46}, {2611, 2, 27},
	{2612, 1, 38}, {2613, 3, 19}, {2614, 2, 30}, {2615, 1, 40},
	{2616, 3, 22}, {2617, 3, 33}, {2618, 1, 44}, {2619, 2, 25},
	{2620, 3, 36},
}
