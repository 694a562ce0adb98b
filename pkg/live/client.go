package live

// clientScript applies server messages and forwards user events.
const clientScript = `
<script>
(function() {
    'use strict';

    var ws = null;
    var reconnectDelay = 1000;

    function byHID(hid) {
        return document.querySelector('[data-hid="' + hid + '"]');
    }

    function apply(msg) {
        var el;
        switch (msg.type) {
            case 'patch':
                var p = msg.patch;
                el = byHID(p.op === 4 ? p.parent : p.hid);
                if (!el) return;
                switch (p.op) {
                    case 1: el.textContent = p.value || ''; break;
                    case 2: el.setAttribute(p.key, p.value || ''); break;
                    case 3: el.removeAttribute(p.key); break;
                    case 4: el.insertAdjacentHTML('beforeend', p.html); break;
                    case 5: el.remove(); break;
                    case 7: el.outerHTML = p.html; break;
                    case 12: el.style.setProperty(p.key, p.value || ''); break;
                    case 13: el.style.removeProperty(p.key); break;
                }
                break;
            case 'html':
                el = byHID(msg.hid);
                if (el) el.innerHTML = msg.html;
                break;
            case 'error':
                console.error('[cells]', msg.error);
                document.body.setAttribute('data-cells-error', msg.error);
                break;
        }
    }

    function send(e, value) {
        var el = e.target.closest('[data-hid]');
        if (!el || !ws || ws.readyState !== 1) return;
        ws.send(JSON.stringify({hid: el.getAttribute('data-hid'), type: e.type, value: value}));
    }

    document.addEventListener('click', function(e) { send(e, ''); });
    document.addEventListener('input', function(e) { send(e, e.target.value || ''); });
    document.addEventListener('change', function(e) { send(e, e.target.value || ''); });
    document.addEventListener('submit', function(e) { e.preventDefault(); send(e, ''); });

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.onopen = function() { reconnectDelay = 1000; };
        ws.onmessage = function(e) {
            try { apply(JSON.parse(e.data)); } catch (err) {}
        };
        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, 30000);
                location.reload();
            }, reconnectDelay);
        };
    }

    connect();
})();
</script>
`
